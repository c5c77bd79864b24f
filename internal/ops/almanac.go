package ops

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"tianji/internal/celestial"
	"tianji/internal/config"
	"tianji/internal/wisdom"
)

// AlmanacInput contains parameters for the Almanac operation.
type AlmanacInput struct {
	ID      string
	Name    string
	Element string // defaults to 土 when no chart or element is given

	Weather *celestial.Reading
	At      time.Time // zero value means now
}

// AlmanacOutput contains the result of the Almanac operation.
type AlmanacOutput struct {
	Snapshot *SnapshotOutput `json:"snapshot"`
	Quote    wisdom.Quote    `json:"quote"`
	Markdown string          `json:"markdown"`
}

// Almanac renders the daily almanac: the celestial snapshot, the solar
// term, and the quote of the day, as both structured data and a
// markdown page.
func Almanac(database *sql.DB, cfg *config.Config, input AlmanacInput) (*AlmanacOutput, error) {
	element := input.Element
	if input.ID == "" && input.Name == "" && element == "" {
		// Neutral element for anonymous visitors
		element = "土"
	}

	snap, err := Snapshot(database, cfg, SnapshotInput{
		ID:      input.ID,
		Name:    input.Name,
		Element: element,
		Weather: input.Weather,
		At:      input.At,
	})
	if err != nil {
		return nil, err
	}

	at := input.At
	if at.IsZero() {
		at = time.Now()
	}
	quote := wisdom.Daily(at, snap.Element)
	term := celestial.CurrentSolarTerm(int(at.Month()), at.Day())

	return &AlmanacOutput{
		Snapshot: snap,
		Quote:    quote,
		Markdown: renderAlmanac(at, term, snap, quote),
	}, nil
}

// renderAlmanac lays out the almanac page. The output is markdown; the
// web surface runs it through goldmark, the CLI prints it raw.
func renderAlmanac(at time.Time, term string, snap *SnapshotOutput, quote wisdom.Quote) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# 天机黄历 · %s\n\n", at.Format("2006-01-02"))
	fmt.Fprintf(&b, "**节气** %s · **月相** %s · **本命** %s\n\n",
		term, snap.MoonPhase.Name, snap.Element)

	fmt.Fprintf(&b, "## 天时\n\n")
	fmt.Fprintf(&b, "- 岁运：%s（%s）\n", snap.Qi.YearLuck.Type, snap.Qi.YearLuck.Element)
	fmt.Fprintf(&b, "- 主气：%s（%s）\n", snap.Qi.MainQi.Name, snap.Qi.MainQi.Element)
	fmt.Fprintf(&b, "- 客气：司天%s · 在泉%s\n", snap.Qi.GuestQi.SiTian, snap.Qi.GuestQi.ZaiQuan)
	fmt.Fprintf(&b, "- 当令经络：%s时 %s（%s）\n\n",
		snap.Meridian.Branch, snap.Meridian.Meridian, snap.Meridian.Element)

	fmt.Fprintf(&b, "## 修炼加成\n\n")
	fmt.Fprintf(&b, "| 因素 | 倍率 | 说明 |\n|---|---|---|\n")
	for _, d := range []celestial.BonusDetail{
		snap.Bonus.Details.Weather,
		snap.Bonus.Details.Temperature,
		snap.Bonus.Details.Qi,
		snap.Bonus.Details.Meridian,
		snap.Bonus.Details.Hour,
		snap.Bonus.Details.Moon,
	} {
		fmt.Fprintf(&b, "| %s | %.2f | %s |\n", d.Factor, d.Value, d.Desc)
	}
	fmt.Fprintf(&b, "\n**综合加成：%.2f**\n\n", snap.Bonus.Total)

	fmt.Fprintf(&b, "## 今日偈语\n\n")
	fmt.Fprintf(&b, "> %s\n>\n> —— %s\n", quote.Content, quote.Source)
	if quote.Context != "" {
		fmt.Fprintf(&b, "\n%s\n", quote.Context)
	}

	return b.String()
}
