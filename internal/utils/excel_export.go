package utils

import (
	"fmt"
	"time"

	"devfolio/internal/models"

	"github.com/xuri/excelize/v2"
)

const contactSheet = "Messages"

// WriteContactMessagesExcel выгружает сообщения с формы в Excel файл
func WriteContactMessagesExcel(filepath string, messages []models.ContactMessage) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(contactSheet)
	if err != nil {
		return err
	}

	headers := []string{"ID", "Name", "Email", "Message", "Sent At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(contactSheet, cell, header)
	}

	for rowIdx, msg := range messages {
		rowNum := rowIdx + 2 // Заголовок в первой строке

		f.SetCellValue(contactSheet, fmt.Sprintf("A%d", rowNum), msg.ID)
		f.SetCellValue(contactSheet, fmt.Sprintf("B%d", rowNum), msg.Name)
		f.SetCellValue(contactSheet, fmt.Sprintf("C%d", rowNum), msg.Email)
		f.SetCellValue(contactSheet, fmt.Sprintf("D%d", rowNum), msg.Message)
		f.SetCellValue(contactSheet, fmt.Sprintf("E%d", rowNum),
			msg.SentAt.Format("2006-01-02 15:04:05"))
	}

	widths := []float64{8, 20, 28, 60, 20}
	for i, width := range widths {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(contactSheet, colName, colName, width)
	}

	createContactInfoSheet(f, messages)

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(filepath)
}

func createContactInfoSheet(f *excelize.File, messages []models.ContactMessage) {
	f.NewSheet("Info")

	f.SetCellValue("Info", "A1", "Report Generated")
	f.SetCellValue("Info", "B1", time.Now().Format("2006-01-02 15:04:05"))
	f.SetCellValue("Info", "A2", "Total Messages")
	f.SetCellValue("Info", "B2", len(messages))

	if len(messages) > 0 {
		f.SetCellValue("Info", "A3", "Time Range")
		f.SetCellValue("Info", "B3", fmt.Sprintf("%s to %s",
			messages[len(messages)-1].SentAt.Format("2006-01-02 15:04:05"),
			messages[0].SentAt.Format("2006-01-02 15:04:05")))
	}
}
