package sheetfeed

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/gocolly/colly/v2"
	"golang.org/x/net/html"
)

// Client reads the published ledger spreadsheet. The ledger is the
// authoritative flat table of task definitions; this client only knows how
// to turn its published HTML rendering back into cell rows.
type Client interface {
	ReadAllRows(sheetName string) ([][]string, error)
}

type client struct {
	logger  *slog.Logger
	baseURL string
}

func New(logger *slog.Logger, baseURL string) Client {
	return client{
		logger:  logger,
		baseURL: baseURL,
	}
}

// ReadAllRows scrapes every data row of the named sheet. The header row is
// excluded; cell order follows the sheet's column order.
func (client client) ReadAllRows(sheetName string) ([][]string, error) {
	rows := [][]string{}

	c := colly.NewCollector()

	c.OnHTML("table tr", func(h *colly.HTMLElement) {
		cells := []string{}
		for _, child := range h.DOM.Children().Nodes {
			if !isCell(child) {
				continue
			}

			cells = append(cells, nodeText(child))
		}

		if len(cells) == 0 {
			return
		}

		rows = append(rows, cells)
	})

	sheetURL := fmt.Sprintf(
		"%s?sheet=%s",
		client.baseURL,
		url.QueryEscape(sheetName),
	)

	client.logger.Debug(fmt.Sprintf("reading ledger sheet %s", sheetName))

	err := c.Visit(sheetURL)
	if err != nil {
		return nil, err
	}

	// first row is the header
	if len(rows) > 0 {
		rows = rows[1:]
	}

	return rows, nil
}

func isCell(node *html.Node) bool {
	return node.Type == html.ElementNode &&
		(node.Data == "td" || node.Data == "th")
}

func nodeText(node *html.Node) string {
	var b strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)

	return strings.TrimSpace(b.String())
}
