package slack

import (
	"context"
	"fmt"
	"time"

	"github.com/bfontes/chess-scorekeeper/internal/notifier"
	"github.com/bfontes/chess-scorekeeper/internal/tournament"
	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client
// that we use. This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = (*Notifier)(nil)

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string) *Notifier {
	return &Notifier{
		api:       slack.New(token),
		channelID: channelID,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
	}
}

func (s *Notifier) sendMessage(message slack.Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return fmt.Errorf("failed to post message: %w", err)
	}

	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return nil
}

// SendMatchResult announces a freshly recorded match.
func (s *Notifier) SendMatchResult(match tournament.Match, player1, player2 tournament.Player) error {
	return s.sendMessage(s.formatMatchResult(match, player1, player2))
}

// SendLeaderboard posts the current ranking.
func (s *Notifier) SendLeaderboard(ranked []tournament.Player) error {
	return s.sendMessage(s.formatLeaderboard(ranked))
}

// formatMatchResult creates the Slack message for a recorded match using
// Block Kit.
func (s *Notifier) formatMatchResult(match tournament.Match, player1, player2 tournament.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "♟️ Match recorded! ♟️", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var resultText string
	switch match.Result {
	case tournament.ResultPlayer1:
		resultText = fmt.Sprintf("%s beat %s", player1.Name, player2.Name)
	case tournament.ResultPlayer2:
		resultText = fmt.Sprintf("%s beat %s", player2.Name, player1.Name)
	default:
		resultText = fmt.Sprintf("%s and %s drew", player1.Name, player2.Name)
	}
	detailsText := fmt.Sprintf("%s\nPlayed on %s", resultText, match.Date)
	if match.Notes != "" {
		detailsText += "\n" + match.Notes
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	standings := fmt.Sprintf("%s: %d pts • %s: %d pts", player1.Name, player1.Points, player2.Name, player2.Points)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", standings, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates the Slack message for the current ranking.
func (s *Notifier) formatLeaderboard(ranked []tournament.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Club ranking 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(ranked) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("plain_text", "No players yet.", false, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	medals := []string{"🥇", "🥈", "🥉"}
	body := ""
	for i, p := range ranked {
		prefix := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			prefix = medals[i]
		}
		body += fmt.Sprintf("%s %s — %d pts (%.1f%% wins)\n", prefix, p.Name, p.Points, tournament.RankingWinRate(p))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", body, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
