// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements ctdict, a tool to build and inspect the files read by
ctstats.

Build a dictionary from a word list, one word per line:

	ctdict -build words.txt -lang en -out data/Dictionary_en.dic

Words are upper-cased. Pure numbers and runs of a single repeated letter are
skipped, as are words with letters outside the alphabet unless -keep is set.

List the words of a dictionary in depth-first order:

	ctdict -list data/Dictionary_en.dic

Describe a dictionary or frequency table:

	ctdict -info data/en-4gram-nocs.gz

List the file formats ctdict understands:

	ctdict -formats

The gram order of a frequency table is taken from its file name, or from
-order when the name does not carry it.
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/langstats/internal/logger"
	"github.com/bastiangx/langstats/internal/utils"
	"github.com/bastiangx/langstats/pkg/grams"
	"github.com/bastiangx/langstats/pkg/langstats"
	"github.com/bastiangx/langstats/pkg/statfile"
	"github.com/bastiangx/langstats/pkg/wordtree"
	"github.com/charmbracelet/log"
)

func main() {
	build := flag.String("build", "", "Word list to build a dictionary from")
	language := flag.String("lang", "en", "Language code of the dictionary")
	alphabet := flag.String("alphabet", "", "Alphabet of the dictionary (default: the language's)")
	out := flag.String("out", "", "Output path (default: Dictionary_<lang>.dic)")
	keep := flag.Bool("keep", false, "Keep words with letters outside the alphabet")
	list := flag.String("list", "", "Print the words of a dictionary")
	info := flag.String("info", "", "Describe a dictionary or frequency table")
	order := flag.Int("order", 0, "Gram order of the table given to -info")
	formats := flag.Bool("formats", false, "List the supported file formats")
	debugMode := flag.Bool("d", false, "Toggle debug mode")

	flag.Parse()
	logger.Setup(*debugMode)
	l := logger.Tool(os.Stderr, "ctdict")

	var err error
	switch {
	case *build != "":
		err = runBuild(l, *build, *language, *alphabet, *out, *keep)
	case *list != "":
		err = runList(*list)
	case *info != "":
		err = runInfo(*info, *order)
	case *formats:
		err = runFormats(os.Stdout)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		l.Fatal(err)
	}
}

func runBuild(l *log.Logger, input, language, alphabet, out string, keep bool) error {
	start := time.Now()
	if alphabet == "" {
		a, ok := langstats.Alphabet(language, false)
		if !ok {
			return fmt.Errorf("no alphabet known for language %q, use -alphabet", language)
		}
		alphabet = a
	}
	if out == "" {
		out = langstats.DictionaryFileName(language)
	}

	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	tree := wordtree.New(language, alphabet)
	skipped := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		if utils.IsOnlyNumbers(word) || utils.IsRepetitive(word) || (!keep && !inAlphabet(word, alphabet)) {
			l.Debugf("Skipping %q", word)
			skipped++
			continue
		}
		if _, err := tree.AddWord(word); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}

	if err := tree.Save(out); err != nil {
		return err
	}
	l.Infof("Wrote %s: %d words, %d skipped, in %v", out, tree.MarkedWords, skipped, time.Since(start))
	return nil
}

func inAlphabet(word, alphabet string) bool {
	for _, r := range word {
		if !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}

func runList(path string) error {
	tree, err := wordtree.Load(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(os.Stdout)
	for _, word := range tree.ToList() {
		fmt.Fprintln(w, word)
	}
	return w.Flush()
}

func runInfo(path string, order int) error {
	format, err := statfile.DetectFormat(path)
	if err != nil {
		return err
	}
	if err := statfile.ValidateFileFormat(path, format); err != nil {
		return err
	}
	desc, _ := statfile.GetFormatInfo(format)
	fmt.Printf("file:      %s\nformat:    %s (%s)\n", path, desc.Description, desc.Magic)

	switch format {
	case statfile.FormatDictionary:
		tree, err := wordtree.Load(path)
		if err != nil {
			return err
		}
		fmt.Printf("language:  %s\nalphabet:  %s\nwords:     %d (header %d, stored %d)\n",
			tree.LanguageCode, tree.Alphabet, tree.MarkedWords, tree.HeaderWords, tree.StoredWords)
	case statfile.FormatFrequencies:
		if order == 0 {
			order = orderFromName(path)
		}
		o, err := grams.OrderFromSize(order)
		if err != nil {
			return fmt.Errorf("cannot tell the gram order of %s, use -order: %w", path, err)
		}
		table, err := statfile.LoadFrequencies(path, int(o))
		if err != nil {
			return err
		}
		model, err := grams.New(table)
		if err != nil {
			return err
		}
		fmt.Printf("language:  %s\norder:     %s\nalphabet:  %q\nentries:   %d\nmax value: %g\n",
			model.LanguageCode(), model.Order(), model.Alphabet(), model.Len(), model.MaxValue())
	}
	return nil
}

func runFormats(w io.Writer) error {
	for _, f := range statfile.ListSupportedFormats() {
		if _, err := fmt.Fprintf(w, "%-24s magic=%-6s ext=%s min=%dB\n",
			f.Description, f.Magic, strings.Join(f.Extensions, ","), f.MinSize); err != nil {
			return err
		}
	}
	return nil
}

// orderFromName reads N from names like "en-4gram-nocs.gz". It returns 0 when
// the name does not match.
func orderFromName(path string) int {
	base := path[strings.LastIndexAny(path, `/\`)+1:]
	parts := strings.Split(base, "-")
	if len(parts) < 2 {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSuffix(parts[1], "gram"))
	if err != nil {
		return 0
	}
	return n
}
