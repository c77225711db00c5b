package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/glabrego/stack-cli/internal/storage"
)

var commandHelp = []struct {
	name string
	text string
}{
	{"search", "Search questions for the given query.\nusage: search [query]\n[query> ...]\ntags> tags separated by spaces"},
	{"open", "Open the question with the given ID in the web browser.\nusage: open question-id"},
	{"history", "List recent searches, newest first.\nusage: history [count]"},
	{"help", "List commands, or show help for one command.\nusage: help [command]"},
	{"quit", "Quit."},
}

func (s *Shell) help(topic string) {
	if topic == "" {
		names := make([]string, 0, len(commandHelp))
		for _, c := range commandHelp {
			names = append(names, c.name)
		}
		s.printf("Documented commands (type help <topic>):\n%s\n", strings.Join(names, "  "))
		return
	}
	for _, c := range commandHelp {
		if c.name == topic {
			s.printf("%s\n", c.text)
			return
		}
	}
	s.printf("*** No help on %s\n", topic)
}

// WriteHistory prints one search per line, newest first as given.
func WriteHistory(w io.Writer, searches []storage.Search) {
	if len(searches) == 0 {
		_, _ = io.WriteString(w, "No search history.\n")
		return
	}
	for _, s := range searches {
		line := fmt.Sprintf("%s  %-30s", s.SearchedAt.Local().Format("2006-01-02 15:04"), s.Query)
		if len(s.Tags) > 0 {
			line += "  [" + strings.Join(s.Tags, ";") + "]"
		}
		line += fmt.Sprintf("  %d results (%s)", s.ResultCount, s.Site)
		_, _ = io.WriteString(w, strings.TrimRight(line, " ")+"\n")
	}
}
