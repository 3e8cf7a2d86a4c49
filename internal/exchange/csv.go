// Package exchange holds the import/export adapters: the CSV tokenizer and
// serializers plus the JSON backup format. It depends on the tournament core,
// never the other way around.
package exchange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bfontes/chess-scorekeeper/internal/tournament"
)

// ErrInsufficientRows is returned when an imported CSV has no data rows.
var ErrInsufficientRows = errors.New("csv file must contain a header row and at least one data row")

const playersHeader = "Nome,Email,Pontos,Vitórias,Derrotas,Empates,Partidas,Taxa de Vitória,Data de Cadastro"

const reportHeader = "Posição,Jogador,Pontos,Partidas,Vitórias,Empates,Derrotas,Taxa de Vitória,Última Partida"

// ParseLine splits a single CSV line into fields. A quote character toggles
// the in-quotes flag and a comma outside quotes ends the field. Doubled
// quotes inside quoted fields are NOT unescaped here, even though the
// exporters double them on the way out.
func ParseLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, current.String())
	return fields
}

// ParsePlayersCSV tokenizes a players CSV file. Blank lines are discarded and
// the first remaining line is the header; header keys are matched
// case-insensitively and accept the localized variants nome/name/jogador and
// email/e-mail. Data rows whose field count differs from the header's are
// silently dropped. Line numbers count non-blank lines with the header as
// line 1.
func ParsePlayersCSV(text string) ([]tournament.ImportedPlayer, error) {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) < 2 {
		return nil, ErrInsufficientRows
	}

	header := ParseLine(lines[0])
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var rows []tournament.ImportedPlayer
	for i, line := range lines[1:] {
		fields := ParseLine(line)
		if len(fields) != len(header) {
			continue
		}
		row := tournament.ImportedPlayer{Line: i + 2}
		for j, key := range header {
			value := strings.TrimSpace(fields[j])
			switch key {
			case "nome", "name", "jogador":
				row.Name = value
			case "email", "e-mail":
				row.Email = value
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// quote wraps a field in quotes, doubling any quote characters inside it.
func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func writeRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quote(field))
	}
	b.WriteByte('\n')
}

// ExportPlayersCSV serializes the roster, one row per player, every field
// quoted.
func ExportPlayersCSV(players []tournament.Player) string {
	var b strings.Builder
	b.WriteString(playersHeader)
	b.WriteByte('\n')
	for _, p := range players {
		writeRow(&b, []string{
			p.Name,
			p.Email,
			strconv.Itoa(p.Points),
			strconv.Itoa(p.Wins),
			strconv.Itoa(p.Losses),
			strconv.Itoa(p.Draws),
			strconv.Itoa(p.Matches),
			fmt.Sprintf("%.1f%%", tournament.RankingWinRate(p)),
			p.CreatedAt.Format("02/01/2006"),
		})
	}
	return b.String()
}

// ExportReportCSV serializes the full ranking report: a few summary lines
// followed by the ranked table with 1-based positions.
func ExportReportCSV(players []tournament.Player, matches []tournament.Match, now time.Time) string {
	stats := tournament.ComputeReportStatistics(players, matches)

	var b strings.Builder
	b.WriteString("Relatório do Torneio de Xadrez\n")
	b.WriteString("Gerado em: " + now.Format("02/01/2006") + "\n")
	fmt.Fprintf(&b, "Total de Jogadores: %d\n", stats.TotalPlayers)
	fmt.Fprintf(&b, "Total de Partidas: %d\n", stats.TotalMatches)
	b.WriteByte('\n')
	b.WriteString(reportHeader)
	b.WriteByte('\n')

	lastMatch := lastMatchDates(matches)
	for i, p := range tournament.ComputeRanking(players) {
		last := "N/A"
		if date, ok := lastMatch[p.ID]; ok {
			last = formatDate(date)
		}
		writeRow(&b, []string{
			strconv.Itoa(i + 1),
			p.Name,
			strconv.Itoa(p.Points),
			strconv.Itoa(p.Matches),
			strconv.Itoa(p.Wins),
			strconv.Itoa(p.Draws),
			strconv.Itoa(p.Losses),
			fmt.Sprintf("%.1f%%", tournament.RankingWinRate(p)),
			last,
		})
	}
	return b.String()
}

// lastMatchDates maps player IDs to the date of their most recently recorded
// match.
func lastMatchDates(matches []tournament.Match) map[string]string {
	latest := make(map[string]time.Time)
	dates := make(map[string]string)
	for _, m := range matches {
		for _, id := range []string{m.Player1ID, m.Player2ID} {
			if at, ok := latest[id]; !ok || m.CreatedAt.After(at) {
				latest[id] = m.CreatedAt
				dates[id] = m.Date
			}
		}
	}
	return dates
}

// formatDate renders a YYYY-MM-DD match date as dd/mm/yyyy, passing through
// anything it cannot parse.
func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}
