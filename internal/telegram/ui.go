package telegram

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/saulo-duarte/quiz-lambda/internal/game"
	"github.com/saulo-duarte/quiz-lambda/internal/result"
)

const (
	msgChooseAnswer   = "Please choose an answer!"
	msgStaleButton    = "That question is no longer active."
	msgNothingToShow  = "Nothing to show: the question bank is empty."
	msgNoQuiz         = "No quiz in progress. Send /quiz to start one."
	msgTryLater       = "Something went wrong, please try again later."
	msgUseButtons     = "Use the buttons under the question, or send /quiz to start."
	msgUnknownCommand = "Unknown command. Send /help to see what I understand."
	msgHelp           = "<b>How to play</b>\n" +
		"Tap an answer to select it, then tap <b>Submit</b>.\n\n" +
		"/quiz starts a new quiz\n/score shows your score\n/top shows the leaderboard"
)

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func questionText(v game.View) string {
	return fmt.Sprintf("<b>%d/%d.</b> %s", v.Index, v.Total, html.EscapeString(v.Text))
}

func answeredText(v game.View, choice int, correct bool) string {
	mark := "❌ Wrong"
	if correct {
		mark = "✅ Correct"
	}
	chosen := ""
	if choice >= 0 && choice < len(v.Options) {
		chosen = v.Options[choice]
	}
	return fmt.Sprintf("%s\n\nYour answer: %s\n%s", questionText(v), html.EscapeString(chosen), mark)
}

// answerKeyboard lists the options one per row with the selected one ticked,
// followed by a Submit button carrying the selection.
func answerKeyboard(tag string, round int, v game.View, selected *int) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(v.Options)+1)
	for i, option := range v.Options {
		choice := i
		label := "▫️ " + option
		if selected != nil && *selected == i {
			label = "✔️ " + option
		}
		data := callbackData{action: actionPick, game: tag, round: round, index: v.Index, choice: &choice}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, data.String()),
		))
	}
	submit := callbackData{action: actionSubmit, game: tag, round: round, index: v.Index, choice: selected}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Submit", submit.String()),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func scoreText(g *game.Game) string {
	summary := g.Summary()
	if g.Finished() {
		return summary.String()
	}
	v, _ := g.Current()
	return fmt.Sprintf("Score: %d, question %d of %d", summary.Score, v.Index, v.Total)
}

func leaderboardText(entries []result.LeaderboardEntry) string {
	if len(entries) == 0 {
		return "No results yet."
	}
	var b strings.Builder
	b.WriteString("<b>Leaderboard</b>\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%d. %s: %d/%d (%d%%)\n", e.Rank, html.EscapeString(e.Player), e.Score, e.Total, e.Percentage)
	}
	return b.String()
}
