package results

import (
	"strings"
	"testing"

	"github.com/GabrielMeirinho/mash4gelt/internal/game"
)

func fate() game.Result {
	return game.Result{Fates: []game.Fate{
		{Key: game.HousingKey, Label: "MASH", Value: "Shack"},
		{Key: "partner", Label: "Partner", Value: "Steve"},
		{Key: "vehicle", Label: "Vehicle", Value: "Bike"},
		{Key: "pet", Label: "Pet", Value: "Axolotl|Newt"},
	}}
}

func TestStory(t *testing.T) {
	got := Story(fate())
	want := "You will live in a **Shack**, with **Steve**, and driving a **Bike**."
	if got != want {
		t.Errorf("Story() = %q, want %q", got, want)
	}
}

func TestStoryWithoutHousing(t *testing.T) {
	res := game.Result{Fates: []game.Fate{{Key: "partner", Label: "Partner", Value: "Jeff"}}}
	if got := Story(res); got != "You will live with **Jeff**." {
		t.Errorf("Story() = %q", got)
	}
}

func TestStoryCustomOnly(t *testing.T) {
	res := game.Result{Fates: []game.Fate{{Key: "pet", Label: "Pet", Value: "Cat"}}}
	if got := Story(res); got != "" {
		t.Errorf("Story() = %q, want empty", got)
	}
}

func TestStoryEscapesPlayerText(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"Mr_Big", `**Mr\_Big**`},
		{"*Steve*", `**\*Steve\***`},
		{"`code`", "**\\`code\\`**"},
		{"[link](x)", `**\[link\](x)**`},
		{`back\slash`, `**back\\slash**`},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			res := game.Result{Fates: []game.Fate{{Key: "partner", Label: "Partner", Value: tt.value}}}
			want := "You will live with " + tt.want + "."
			if got := Story(res); got != want {
				t.Errorf("Story() = %q, want %q", got, want)
			}
		})
	}
}

func TestMarkdownEscapesTableAndStory(t *testing.T) {
	m := New()
	m.SetResult(game.Result{Fates: []game.Fate{{Key: "partner", Label: "Partner", Value: "Mr_*Big*"}}})
	if got := strings.Count(m.Markdown, `Mr\_\*Big\*`); got != 2 {
		t.Errorf("escaped option appears %d times, want story and table:\n%s", got, m.Markdown)
	}
}

func TestMarkdownTable(t *testing.T) {
	md := Markdown(fate())
	if !strings.HasPrefix(md, "# "+LabelTitle) {
		t.Errorf("markdown does not start with the title: %q", md)
	}
	if !strings.Contains(md, `| Pet | Axolotl\|Newt |`) {
		t.Errorf("custom category row missing or unescaped:\n%s", md)
	}
}

func TestViewRendersFate(t *testing.T) {
	m := New()
	m.Width = 80
	m.SetResult(fate())
	v := m.View()
	for _, want := range []string{"Shack", "Steve", "Bike", LabelAction} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
