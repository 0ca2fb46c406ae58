// Command cxserver runs the lineardoc HTTP service: it loads the
// removable-sections configuration, wires a Contextualizer and a
// sentence-boundary function, and serves the translate/html endpoint.
package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"regexp"

	cxserver "github.com/wikimedia/cxserver-lineardoc"
	"github.com/wikimedia/cxserver-lineardoc/internal/config"
	"github.com/wikimedia/cxserver-lineardoc/internal/segmenters"
	"github.com/wikimedia/cxserver-lineardoc/lineardoc"
)

func main() {
	addr := flag.String("addr", ":8080", "address to listen on")
	configPath := flag.String("config", "config.yaml", "path to removableSections configuration")
	lang := flag.String("lang", "en", "language code passed to the sentence splitter")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, err := lineardoc.NewMWContextualizer(cfg.RemovableSections)
	if err != nil {
		logger.Error("build contextualizer", "error", err)
		os.Exit(1)
	}

	boundary := segmenters.Adapt(naiveSentenceSplitter{}, *lang)

	h := &cxserver.Handler{
		Contextualizer: ctx,
		Boundary:       boundary,
		Logger:         logger,
		OnError: func(r *http.Request, err error) {
			logger.Error("request failed", "path", r.URL.Path, "error", err)
		},
	}

	logger.Info("listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, h); err != nil {
		logger.Error("serve", "error", err)
		os.Exit(1)
	}
}

// sentenceBoundaryRe is a crude period/question-mark/exclamation-mark
// sentence boundary, used only as the binary's default splitter until a
// real NLP-backed segmenters.SentenceSplitter is wired in its place.
var sentenceBoundaryRe = regexp.MustCompile(`[.!?]+[\s]+`)

// naiveSentenceSplitter implements segmenters.SentenceSplitter with a
// regex-based heuristic; it ignores lang entirely. Production deployments
// are expected to inject a real per-language splitter here instead.
type naiveSentenceSplitter struct{}

func (naiveSentenceSplitter) Split(lang string, text string) ([]string, error) {
	locs := sentenceBoundaryRe.FindAllStringIndex(text, -1)
	sentences := make([]string, 0, len(locs)+1)
	start := 0
	for _, loc := range locs {
		sentences = append(sentences, text[start:loc[1]])
		start = loc[1]
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences, nil
}
