package ballot

import (
	"fmt"
	"strings"
	"time"

	"github.com/hard-gainer/buurtstemming/internal/model"
)

// Subject is the question put to the neighbourhood
const Subject = "Laten we de struiken staan of willen we ons gras terug?"

// OptionResult holds the count of a single option
type OptionResult struct {
	Option     model.Option `json:"option"`
	Label      string       `json:"label"`
	Emoji      string       `json:"emoji"`
	Count      int          `json:"count"`
	Percentage int          `json:"percentage"`
}

// Results is the live view of a tally
type Results struct {
	Options      []OptionResult `json:"options"`
	Total        int            `json:"total"`
	Participants []int          `json:"participants"`
}

// Percentage returns count/total as a whole percentage rounded half up, 0 when total is 0
func Percentage(count, total int) int {
	if total <= 0 {
		return 0
	}
	return (count*200 + total) / (2 * total)
}

// ComputeResults counts every option of the tally
func ComputeResults(tally model.Tally) Results {
	total := tally.Total()
	options := make([]OptionResult, 0, len(model.Options()))
	for _, opt := range model.Options() {
		count := tally.Count(opt)
		options = append(options, OptionResult{
			Option:     opt,
			Label:      opt.Label(),
			Emoji:      opt.Emoji(),
			Count:      count,
			Percentage: Percentage(count, total),
		})
	}

	return Results{
		Options:      options,
		Total:        total,
		Participants: tally.Participants(),
	}
}

// Summarize renders the results report shared with the neighbourhood
func Summarize(tally model.Tally, roll model.VoterRoll, generatedAt time.Time) string {
	results := ComputeResults(tally)

	var b strings.Builder
	b.WriteString("🌿 BUURTSTEMMING RESULTATEN 🌿\n")
	fmt.Fprintf(&b, "Datum: %s\n", generatedAt.Format("2-1-2006"))
	fmt.Fprintf(&b, "Onderwerp: %s\n\n", Subject)
	b.WriteString("📊 UITSLAG:\n")

	for _, r := range results.Options {
		fmt.Fprintf(&b, "%s %s: %d stemmen (%d%%)\n", r.Emoji, r.Label, r.Count, r.Percentage)
	}

	fmt.Fprintf(&b, "\nTotaal aantal stemmen: %d\n", results.Total)
	fmt.Fprintf(&b, "Deelgenomen huisnummers: %s\n\n", model.JoinNumbers(results.Participants))
	fmt.Fprintf(&b, "Deze stemming is transparant uitgevoerd met alle buurtbewoners van huisnummers: %s.", roll)

	return b.String()
}
