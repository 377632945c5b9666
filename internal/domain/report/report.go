package report

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	quiz "github.com/IT-Nick/quizbot/internal/domain/quiz/service"
	"github.com/jung-kurt/gofpdf"
)

const (
	fontFamily  = "DejaVu"
	regularFont = "DejaVuSans.ttf"
	boldFont    = "DejaVuSans-Bold.ttf"
)

//go:embed fonts/*.ttf
var embeddedFonts embed.FS

// AnswerSheet формирует PDF-лист ответов билета
type AnswerSheet struct {
	fontDir string
}

// NewAnswerSheet создает генератор. fontDir каталог со своими шрифтами DejaVu,
// пустой fontDir означает шрифты, встроенные в бинарник.
func NewAnswerSheet(fontDir string) *AnswerSheet {
	return &AnswerSheet{fontDir: fontDir}
}

// Write записывает PDF билета в w
func (a *AnswerSheet) Write(w io.Writer, ticket *model.Ticket) error {
	regular, bold, err := a.loadFonts()
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(fontFamily, "", regular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", bold)

	pdf.SetFont(fontFamily, "", 12)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 16)
	pdf.MultiCell(0, 10, fmt.Sprintf("%d-билет", ticket.TicketNumber), "", "L", false)
	pdf.Ln(4)

	for i, q := range ticket.Questions {
		pdf.SetFont(fontFamily, "B", 12)
		pdf.MultiCell(0, 8, fmt.Sprintf("%d. %s", i+1, q.Text), "", "L", false)

		pdf.SetFont(fontFamily, "", 12)
		for j, option := range q.Options {
			mark := "   "
			if option == q.CorrectAnswer {
				mark = "+ "
			}
			pdf.MultiCell(0, 7, fmt.Sprintf("%s%s) %s", mark, quiz.Label(j), option), "", "L", false)
		}
		pdf.Ln(3)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render answer sheet for ticket %d: %w", ticket.TicketNumber, err)
	}
	return nil
}

// loadFonts читает шрифты из fontDir или из встроенных
func (a *AnswerSheet) loadFonts() (regular, bold []byte, err error) {
	read := func(name string) ([]byte, error) {
		if a.fontDir == "" {
			return embeddedFonts.ReadFile("fonts/" + name)
		}
		return os.ReadFile(filepath.Join(a.fontDir, name))
	}

	if regular, err = read(regularFont); err != nil {
		return nil, nil, fmt.Errorf("failed to load font %s: %w", regularFont, err)
	}
	if bold, err = read(boldFont); err != nil {
		return nil, nil, fmt.Errorf("failed to load font %s: %w", boldFont, err)
	}
	return regular, bold, nil
}
