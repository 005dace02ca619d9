package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tellerdesk/internal/api"
)

type clientItem struct {
	id         int64
	name       string
	nationalID string
}

func (i clientItem) Title() string       { return i.name }
func (i clientItem) Description() string { return fmt.Sprintf("#%d  %s", i.id, i.nationalID) }
func (i clientItem) FilterValue() string { return i.name + " " + i.nationalID }

// clientPicker is the modal client selector over the directory cache:
// a filter input above a list, with fuzzy ranking for near-miss typing.
type clientPicker struct {
	input textinput.Model
	list  list.Model
	all   []clientItem
}

func newClientPicker(clients []api.Client) *clientPicker {
	inp := textinput.New()
	inp.Placeholder = "filter"
	inp.Prompt = "> "
	inp.Focus()

	items := make([]clientItem, 0, len(clients))
	for _, c := range clients {
		items = append(items, clientItem{id: c.ID, name: c.FullName, nationalID: c.NationalID})
	}

	litems := make([]list.Item, 0, len(items))
	for _, it := range items {
		litems = append(litems, it)
	}
	lst := list.New(litems, list.NewDefaultDelegate(), 44, 14)
	lst.Title = "Clients"
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)
	lst.DisableQuitKeybindings()

	return &clientPicker{input: inp, list: lst, all: items}
}

// selected returns the highlighted client, 0 when the list is empty.
func (p *clientPicker) selected() (int64, string) {
	if it, ok := p.list.SelectedItem().(clientItem); ok {
		return it.id, it.name
	}
	return 0, ""
}

func (p *clientPicker) update(msg tea.Msg) tea.Cmd {
	var cmd1 tea.Cmd
	p.input, cmd1 = p.input.Update(msg)
	p.refreshFiltered()
	var cmd2 tea.Cmd
	p.list, cmd2 = p.list.Update(msg)
	return tea.Batch(cmd1, cmd2)
}

// refreshFiltered keeps substring matches first, then levenshtein
// near-misses, so a mistyped surname still surfaces the client.
func (p *clientPicker) refreshFiltered() {
	q := strings.ToLower(strings.TrimSpace(p.input.Value()))
	if q == "" {
		items := make([]list.Item, 0, len(p.all))
		for _, it := range p.all {
			items = append(items, it)
		}
		p.list.SetItems(items)
		return
	}

	type scored struct {
		item clientItem
		rank int
	}
	var matches []scored
	for _, it := range p.all {
		hay := strings.ToLower(it.FilterValue())
		if strings.Contains(hay, q) {
			matches = append(matches, scored{item: it, rank: 0})
			continue
		}
		if d := bestWordDistance(hay, q); d <= 2 {
			matches = append(matches, scored{item: it, rank: d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].rank < matches[j].rank })

	items := make([]list.Item, 0, len(matches))
	for _, s := range matches {
		items = append(items, s.item)
	}
	p.list.SetItems(items)
}

// bestWordDistance is the smallest edit distance between the query and any
// word of the haystack.
func bestWordDistance(hay, q string) int {
	best := len(q) + 1
	for _, w := range strings.Fields(hay) {
		if d := levenshtein.ComputeDistance(w, q); d < best {
			best = d
		}
	}
	return best
}

func (p *clientPicker) view() string {
	return p.input.View() + "\n" + p.list.View()
}
