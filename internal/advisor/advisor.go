// Package advisor builds prompts from fee data and asks an external text
// generator for advisory prose. Failures never reach the caller: they are
// logged and replaced by a fixed apology string.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mmynk/apartmanager/internal/models"
)

const (
	// AnalysisUnavailable is returned when the fee analysis cannot be generated.
	AnalysisUnavailable = "Không thể kết nối với trí tuệ nhân tạo lúc này. Vui lòng thử lại sau."
	// DraftUnavailable is returned when a reminder cannot be drafted.
	DraftUnavailable = "Lỗi soạn thảo tự động."
)

// Generator turns a prompt into generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Advisor produces fee analyses and payment reminders.
type Advisor struct {
	gen     Generator
	printer *message.Printer
}

// New creates an Advisor. A nil generator makes every call fall back.
func New(gen Generator) *Advisor {
	return &Advisor{
		gen:     gen,
		printer: message.NewPrinter(language.Vietnamese),
	}
}

// AnalyzeFees asks for a short review of collection progress and overdue
// apartments, with one or two suggested actions.
func (a *Advisor) AnalyzeFees(ctx context.Context, fees []models.FeeItem) string {
	if fees == nil {
		fees = []models.FeeItem{}
	}
	snapshot, err := json.Marshal(fees)
	if err != nil {
		slog.Error("Failed to encode fee snapshot", "error", err)
		return AnalysisUnavailable
	}

	var b strings.Builder
	b.WriteString("Bạn là một chuyên gia quản lý tài chính chung cư. Hãy phân tích danh sách dữ liệu thu phí sau và đưa ra:\n")
	b.WriteString("1. Nhận xét ngắn gọn về tỷ lệ hoàn thành (đã thu/tổng).\n")
	b.WriteString("2. Cảnh báo về các căn hộ quá hạn.\n")
	b.WriteString("3. Gợi ý 1-2 hành động cụ thể để cải thiện nguồn thu.\n\n")
	fmt.Fprintf(&b, "Dữ liệu (JSON): %s\n\n", snapshot)
	b.WriteString("Yêu cầu: Trả lời bằng tiếng Việt, súc tích, định dạng Markdown.")

	return a.generate(ctx, "analyze_fees", b.String(), AnalysisUnavailable)
}

// DraftReminder asks for a short, polite reminder message suitable for SMS.
func (a *Advisor) DraftReminder(ctx context.Context, residentName string, amount int64, apartmentID string) string {
	var b strings.Builder
	b.WriteString("Hãy soạn một tin nhắn nhắc nợ phí chung cư (điện, nước, quản lý) cho cư dân:\n")
	fmt.Fprintf(&b, "- Tên: %s\n", residentName)
	fmt.Fprintf(&b, "- Căn hộ: %s\n", apartmentID)
	fmt.Fprintf(&b, "- Số tiền nợ: %s\n\n", a.FormatVND(amount))
	b.WriteString("Yêu cầu:\n")
	b.WriteString("- Giọng văn: Lịch sự, chân thành nhưng vẫn chuyên nghiệp.\n")
	b.WriteString("- Ngắn gọn để gửi qua Zalo/SMS.\n")
	b.WriteString("- Có lời cảm ơn ở cuối.")

	return a.generate(ctx, "draft_reminder", b.String(), DraftUnavailable)
}

// FormatVND renders an amount with Vietnamese digit grouping, e.g. "1.500.000 ₫".
func (a *Advisor) FormatVND(amount int64) string {
	return a.printer.Sprintf("%d ₫", amount)
}

func (a *Advisor) generate(ctx context.Context, task, prompt, fallback string) string {
	if a.gen == nil {
		slog.Warn("Text generator not configured", "task", task)
		return fallback
	}
	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		slog.Error("Text generation failed", "task", task, "error", err)
		return fallback
	}
	if strings.TrimSpace(text) == "" {
		slog.Warn("Text generation returned nothing", "task", task)
		return fallback
	}
	return text
}
