package web

const packPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Booster</title>
<style>
body { font-family: sans-serif; margin: 2em; }
ol { columns: 2; }
.bronze { color: #a0522d; }
.silver { color: #708090; }
.gold { color: #daa520; font-weight: bold; }
.bonus { background: #fff3c4; }
</style>
</head>
<body>
{{if .Error}}
<h1>No pack this time</h1>
<p>{{.Error}}</p>
<p><a href="">Try again</a></p>
{{else}}
{{with .Pack}}
<h1>{{.Set.Name}} booster</h1>
<p>{{.ID}}: {{.BonusCount}} bonus card(s)</p>
<ol start="0">
{{range .Cards}}
<li class="{{.Rarity}}{{if .BonusRolled}} bonus{{end}}">
{{if .ImageURL}}<img src="{{.ImageURL}}" alt="" height="40"> {{end}}{{.Set}} #{{.PositionInSet}} {{.Name}} ({{.SlotName}}, {{.RarityName}})
</li>
{{end}}
</ol>
{{end}}
{{end}}
</body>
</html>
`
