package volby

import (
	"fmt"
	"strings"
)

const testBaseUrl = "http://volby.test/pls/ps2017nss/"

const indexPage = `<html><body>
<h3>Okres: Praha-západ</h3>
<table class="table">
  <tr><th>Obec</th><th>Název</th><th>Výběr okrsku</th></tr>
  <tr>
    <td class="cislo"><a href="ps311?xjazyk=CZ&amp;xkraj=2&amp;xobec=500054">500054</a></td>
    <td class="overflow_name"> Libčice </td>
    <td class="center"><a href="ps311?xjazyk=CZ&amp;xkraj=2&amp;xobec=500054">X</a></td>
  </tr>
  <tr>
    <td class="cislo">500062</td>
    <td class="overflow_name">Letky</td>
    <td class="center">-</td>
  </tr>
  <tr><td colspan="3">Celkem</td></tr>
</table>
</body></html>`

// summaryTable renders the first table of a result page, `cells` is the
// summary row.
func summaryTable(cells ...string) string {
	var row strings.Builder
	for _, c := range cells {
		fmt.Fprintf(&row, "<td>%s</td>", c)
	}
	return fmt.Sprintf(`<table id="ps311_t1">
  <caption>Obec Libčice</caption>
  <tr><th rowspan="2">Okrsky</th><th colspan="3">Voliči</th></tr>
  <tr><th>celkem</th><th>zprac.</th><th>v %%</th></tr>
  <tr>%s</tr>
</table>`, row.String())
}

type partyRow struct {
	position string
	name     string
	votes    string
}

func partyTable(rows ...partyRow) string {
	var out strings.Builder
	out.WriteString(`<table class="table"><tr><th>Strana</th><th>název</th><th>Platné hlasy</th></tr>`)
	for _, r := range rows {
		fmt.Fprintf(
			&out,
			`<tr><th>%s</th><th>%s</th><td>%s</td><td>%s</td><td>12,50</td></tr>`,
			r.position, r.name, r.position, r.votes,
		)
	}
	out.WriteString(`</table>`)
	return out.String()
}

func resultPage(tables ...string) string {
	return "<html><body>" + strings.Join(tables, "\n") + "</body></html>"
}
