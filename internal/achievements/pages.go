package achievements

// The schemas below follow the markup of the xbox.com achievement pages, they
// are the only description of that format there is. A change on the page
// side shows up as pages without a header.

const (
	fieldTitle      = "title"
	fieldPercent    = "percent"
	fieldScore      = "score"
	fieldScoreTotal = "score_total"
	fieldCount      = "count"
	fieldCountTotal = "count_total"

	fieldImage       = "image"
	fieldName        = "name"
	fieldDescription = "description"
	fieldMonth       = "month"
	fieldDay         = "day"
	fieldYear        = "year"
	fieldHour        = "hour"
	fieldMinute      = "minute"

	fieldIcon = "icon"
)

const (
	ruleDigits = `\d+`
	ruleLazy   = `.*?`
	ruleTile   = `http://tiles.xbox.com/tiles/.*.jpg`
)

// HeaderSchema matches the game summary at the top of an achievement page.
var HeaderSchema = Schema{
	Name: "header",
	Template: `.*<span class="XbcLiveText">{{title}}</span>.*Achievements</h2></div>` +
		`<div class="XbcAchPercentageBar"><div><div style="width:\d+%;"></div></div><p>{{percent}}% Unlocked</p></div></div>` +
		`<div class="XbcProfileSubHead"><p class="XbcFloatLeft"><strong>{{score}} of {{score_total}}\s<img src="/xweb/lib/images/G_Icon_External.gif" /></strong>` +
		`<br /><strong>{{count}} of {{count_total}} Achievements</strong></p><div class="XbcFloatClear"></div></div>` +
		`<div class="XbcProfileTableContainer"><table class="XbcProfileTable XbcAchievementsDetailsTable" cellpadding="0" cellspacing="0">` +
		`<thead><tr class="XbcTableColumns"><th class="XbcAchCol1"><span class="XbcDisplayNone">Achievements </span></th>` +
		`<th class="XbcAchCol2"><span class="XbcDisplayNone">Gamerscore </span></th></tr></thead>`,
	Fields: []Field{
		{Name: fieldTitle, Rule: ruleLazy},
		{Name: fieldPercent, Rule: ruleDigits},
		{Name: fieldScore, Rule: ruleDigits},
		{Name: fieldScoreTotal, Rule: ruleDigits},
		{Name: fieldCount, Rule: ruleDigits},
		{Name: fieldCountTotal, Rule: ruleDigits},
	},
}.MustCompile()

// ItemSchema matches a single unlocked achievement row. The month passed to
// _xbcDisplayDate is 0-based.
var ItemSchema = Schema{
	Name: "item",
	Template: `<tbody\sid="ad_.?.?"><tr><td class="XbcAchDescription"><div class="XbcProfileImageDescCell">` +
		`<img src="{{image}}" /><p><strong class="XbcAchievementsTitle">{{name}}\n?</strong><br />{{description}}\n?</p></div></td>` +
		`<td class="XbcAchGamerData"><strong>{{score}} <img src="/xweb/lib/images/G_Icon_External.gif" /></strong>` +
		`<br /><strong>Acquired <script type="text/javascript">\n\s+<!--\n\s+` +
		`_xbcDisplayDate\({{month}},\s{{day}},\s{{year}},\s{{hour}},\s{{minute}}\);\n\s+--></script>` +
		`<noscript>\d\d?/\d\d?/\d\d\d\d</noscript></strong></td></tr></tbody>`,
	Fields: []Field{
		{Name: fieldImage, Rule: ruleTile},
		{Name: fieldName, Rule: ruleLazy},
		{Name: fieldDescription, Rule: ruleLazy},
		{Name: fieldScore, Rule: ruleDigits},
		{Name: fieldMonth, Rule: ruleDigits},
		{Name: fieldDay, Rule: ruleDigits},
		{Name: fieldYear, Rule: ruleDigits},
		{Name: fieldHour, Rule: ruleDigits},
		{Name: fieldMinute, Rule: ruleDigits},
	},
}.MustCompile()

// GameSchema matches a row of the games list page, which carries the game
// icons.
var GameSchema = Schema{
	Name: "game",
	Template: `<tbody id=".{2}_.{8}"><tr onclick="XbcGetFirstChildHref\(this\);" ` +
		`onMouseOver="XbcNav_swapclass\(this, 'XbcProfileHighlight', ''\);" ` +
		`onMouseOut="XbcNav_swapclass\(this,'XbcProfileHighlight',''\);"><td class="XbcAchGameCell">` +
		`<div class="XbcProfileImageDescCell"><img class="AchievementsGameIcon" src="{{icon}}" alt=".*" />` +
		`<p><a href="http://live.xbox.com/en-../profile/Achievements/ViewAchievementDetails.aspx\?tid=.*">` +
		`<strong class="XbcAchievementsTitle">{{title}}</strong></a><br /><strong>Last Played Online:`,
	Fields: []Field{
		{Name: fieldIcon, Rule: ruleTile},
		{Name: fieldTitle, Rule: `.*`},
	},
}.MustCompile()
