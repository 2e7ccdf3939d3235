// Package pagetest builds achievement pages in the xbox.com markup for tests.
package pagetest

import (
	"fmt"
	"strings"
)

type Header struct {
	Title      string
	Percent    int
	Score      int
	ScoreTotal int
	Count      int
	CountTotal int
}

// Item describes an achievement row, Month is 1-based and converted to the
// 0-based month the page uses.
type Item struct {
	Image       string
	Name        string
	Description string
	Score       int
	Year        int
	Month       int
	Day         int
	Hour        int
	Minute      int
}

func (h Header) HTML() string {
	return fmt.Sprintf(
		`<div class="XbcProfileHead"><h2><span class="XbcLiveText">%s</span> Achievements</h2></div>`+
			`<div class="XbcAchPercentageBar"><div><div style="width:%d%%;"></div></div><p>%d%% Unlocked</p></div></div>`+
			`<div class="XbcProfileSubHead"><p class="XbcFloatLeft"><strong>%d of %d <img src="/xweb/lib/images/G_Icon_External.gif" /></strong>`+
			`<br /><strong>%d of %d Achievements</strong></p><div class="XbcFloatClear"></div></div>`+
			`<div class="XbcProfileTableContainer"><table class="XbcProfileTable XbcAchievementsDetailsTable" cellpadding="0" cellspacing="0">`+
			`<thead><tr class="XbcTableColumns"><th class="XbcAchCol1"><span class="XbcDisplayNone">Achievements </span></th>`+
			`<th class="XbcAchCol2"><span class="XbcDisplayNone">Gamerscore </span></th></tr></thead>`,
		h.Title, h.Percent, h.Percent,
		h.Score, h.ScoreTotal,
		h.Count, h.CountTotal,
	)
}

func (i Item) HTML(index int) string {
	image := i.Image
	if image == "" {
		image = fmt.Sprintf("http://tiles.xbox.com/tiles/xx/item%d.jpg", index)
	}
	return fmt.Sprintf(
		`<tbody id="ad_%d"><tr><td class="XbcAchDescription"><div class="XbcProfileImageDescCell">`+
			`<img src="%s" /><p><strong class="XbcAchievementsTitle">%s</strong><br />%s</p></div></td>`+
			`<td class="XbcAchGamerData"><strong>%d <img src="/xweb/lib/images/G_Icon_External.gif" /></strong>`+
			"<br /><strong>Acquired <script type=\"text/javascript\">\n"+
			"    <!--\n"+
			"    _xbcDisplayDate(%d, %d, %d, %d, %d);\n"+
			"    --></script><noscript>%d/%d/%d</noscript></strong></td></tr></tbody>",
		index%100,
		image, i.Name, i.Description,
		i.Score,
		i.Month-1, i.Day, i.Year, i.Hour, i.Minute,
		i.Month, i.Day, i.Year,
	)
}

// Page renders a full page with the header followed by the items.
func Page(header Header, items ...Item) string {
	var sb strings.Builder
	sb.WriteString("<html><body>\n")
	sb.WriteString(header.HTML())
	sb.WriteString("\n")
	for i, item := range items {
		sb.WriteString(item.HTML(i))
		sb.WriteString("\n")
	}
	sb.WriteString("</table></div></body></html>\n")
	return sb.String()
}

// Game is a row of the games list page.
type Game struct {
	Title string
	Icon  string
}

// GamesPage renders the games list page.
func GamesPage(games ...Game) string {
	var sb strings.Builder
	sb.WriteString("<html><body><table>\n")
	for i, g := range games {
		fmt.Fprintf(
			&sb,
			`<tbody id="ga_%08d"><tr onclick="XbcGetFirstChildHref(this);" `+
				`onMouseOver="XbcNav_swapclass(this, 'XbcProfileHighlight', '');" `+
				`onMouseOut="XbcNav_swapclass(this,'XbcProfileHighlight','');"><td class="XbcAchGameCell">`+
				`<div class="XbcProfileImageDescCell"><img class="AchievementsGameIcon" src="%s" alt="%s" />`+
				`<p><a href="http://live.xbox.com/en-US/profile/Achievements/ViewAchievementDetails.aspx?tid=%d">`+
				`<strong class="XbcAchievementsTitle">%s</strong></a><br /><strong>Last Played Online: today</strong></p></div></td></tr></tbody>`+
				"\n",
			i, g.Icon, g.Title, i, g.Title,
		)
	}
	sb.WriteString("</table></body></html>\n")
	return sb.String()
}
