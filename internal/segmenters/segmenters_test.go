package segmenters

import (
	"errors"
	"reflect"
	"testing"
)

var errSplitterFailed = errors.New("splitter failed")

type fakeSplitter struct {
	sentences []string
	err       error
}

func (f fakeSplitter) Split(lang string, text string) ([]string, error) {
	return f.sentences, f.err
}

func TestAdapt(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		splitFn []string
		want    []int
	}{
		{
			name:    "two sentences",
			text:    "Hello world. Goodbye world.",
			splitFn: []string{"Hello world. ", "Goodbye world."},
			want:    []int{0, 13},
		},
		{
			name:    "empty text",
			text:    "",
			splitFn: nil,
			want:    nil,
		},
		{
			name:    "sentence not found is skipped",
			text:    "Hello world.",
			splitFn: []string{"Nope.", "Hello world."},
			want:    []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := Adapt(fakeSplitter{sentences: tt.splitFn}, "en")
			got, err := fn(tt.text)
			if err != nil {
				t.Fatalf("Adapt() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Adapt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdapt_SplitError(t *testing.T) {
	wantErr := errSplitterFailed
	fn := Adapt(fakeSplitter{err: wantErr}, "en")
	if _, err := fn("some text"); err != wantErr {
		t.Errorf("Adapt() error = %v, want %v", err, wantErr)
	}
}
