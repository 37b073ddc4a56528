// Package cli is an interactive scoring prompt for trying out models and dictionaries
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/langstats/internal/utils"
	"github.com/bastiangx/langstats/pkg/grams"
	"github.com/bastiangx/langstats/pkg/langstats"
	"github.com/bastiangx/langstats/pkg/suggest"
	"github.com/charmbracelet/log"
)

// Options are the prompt defaults.
type Options struct {
	Language      string
	UseSpaces     bool
	Order         grams.Order
	ShowWords     bool
	DictEnabled   bool
	CompleteLimit int
}

// InputHandler reads lines and prints their cost, IoC and dictionary hits.
// Lines starting with ':' are commands:
//
//	:order N      switch the gram order
//	:lang CODE    switch the language
//	:complete P   complete a prefix from the dictionary
//	:help         list the commands
type InputHandler struct {
	cache   *langstats.Cache
	opts    Options
	indexes map[string]*suggest.Index
	in      io.Reader
	out     io.Writer
}

// NewInputHandler handles initialization of the InputHandler
func NewInputHandler(cache *langstats.Cache, opts Options, in io.Reader, out io.Writer) *InputHandler {
	if !opts.Order.Valid() {
		opts.Order = grams.Tetragrams
	}
	return &InputHandler{
		cache:   cache,
		opts:    opts,
		indexes: make(map[string]*suggest.Index),
		in:      in,
		out:     out,
	}
}

// Start runs the prompt until EOF.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, labelStyle.Render("langstats CLI"))
	fmt.Fprintln(h.out, hintStyle.Render("type a text and press Enter to score it, :help for commands (Ctrl+C to exit)"))

	reader := bufio.NewReader(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			h.handleInput(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(h.out)
				return nil
			}
			return err
		}
	}
}

func (h *InputHandler) handleInput(line string) {
	if strings.HasPrefix(line, ":") {
		h.handleCommand(line)
		return
	}
	h.score(line)
}

func (h *InputHandler) handleCommand(line string) {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "order":
		size, err := strconv.Atoi(arg)
		if err != nil {
			h.fail(fmt.Errorf("order must be a number: %q", arg))
			return
		}
		order, err := grams.OrderFromSize(size)
		if err != nil {
			h.fail(err)
			return
		}
		h.opts.Order = order
		fmt.Fprintln(h.out, field("order", order))
	case "lang":
		if _, err := langstats.LanguageID(arg); err != nil {
			h.fail(err)
			return
		}
		h.opts.Language = strings.ToLower(arg)
		name, _ := langstats.LanguageName(arg)
		fmt.Fprintln(h.out, field("language", name))
	case "complete":
		h.complete(arg)
	case "help":
		fmt.Fprintln(h.out, hintStyle.Render(":order N | :lang CODE | :complete PREFIX | :help"))
	default:
		h.fail(fmt.Errorf("unknown command %q", name))
	}
}

// score prints cost, IoC and, when enabled, the dictionary check per word.
func (h *InputHandler) score(text string) {
	start := time.Now()
	model, err := h.cache.Grams(h.opts.Language, h.opts.Order, h.opts.UseSpaces)
	if err != nil {
		h.fail(err)
		return
	}

	upper := strings.ToUpper(text)
	numbers := langstats.MapTextToNumbers(upper, model.Alphabet())
	cost := model.Cost(numbers)
	log.Debugf("Scored %d symbols in %v", len(numbers), time.Since(start))

	fmt.Fprintf(h.out, "%s  %s  %s\n",
		field(model.Order().String(), fmt.Sprintf("%.4f", cost)),
		field("ioc", fmt.Sprintf("%.5f", langstats.CalculateIoC(utils.LettersOnly(text)))),
		field("symbols", formatWithCommas(len(numbers))))

	if !h.opts.ShowWords || !h.opts.DictEnabled {
		return
	}
	tree, err := h.cache.WordTree(h.opts.Language)
	if err != nil {
		log.Debugf("Skipping dictionary check: %v", err)
		return
	}
	var parts []string
	for _, word := range utils.SplitWords(text) {
		if tree.ContainsCompleteWord(word) {
			parts = append(parts, foundStyle.Render(word))
		} else {
			parts = append(parts, missStyle.Render(word))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintln(h.out, labelStyle.Render("words:")+" "+strings.Join(parts, " "))
	}
}

func (h *InputHandler) complete(prefix string) {
	if !h.opts.DictEnabled {
		h.fail(errors.New("dictionary is disabled"))
		return
	}
	if prefix == "" {
		h.fail(errors.New("missing prefix"))
		return
	}
	idx, ok := h.indexes[h.opts.Language]
	if !ok {
		tree, err := h.cache.WordTree(h.opts.Language)
		if err != nil {
			h.fail(err)
			return
		}
		idx = suggest.NewIndex(tree)
		h.indexes[h.opts.Language] = idx
	}

	suggestions := idx.Complete(prefix, h.opts.CompleteLimit)
	if len(suggestions) == 0 {
		fmt.Fprintln(h.out, missStyle.Render(fmt.Sprintf("no completions for %q", prefix)))
		return
	}
	for i, s := range suggestions {
		fmt.Fprintf(h.out, "%2d. %s\n", i+1, foundStyle.Render(s.Word))
	}
}

func (h *InputHandler) fail(err error) {
	fmt.Fprintln(h.out, missStyle.Render("error: "+err.Error()))
}
