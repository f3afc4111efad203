package email

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/subtrack/subtrack_go_server/config"
)

type Service struct {
	cfg *config.EmailConfig
}

func NewService(cfg *config.EmailConfig) *Service {
	return &Service{cfg: cfg}
}

// SendPaymentReminder 发送付款提醒邮件
func (s *Service) SendPaymentReminder(to, serviceName string, amount float64, dueDate time.Time, daysUntilDue int) error {
	subject := fmt.Sprintf("付款提醒：%s - 订阅管家", serviceName)
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">付款提醒</h2>
        <p>您好，</p>
        <p>您的订阅即将扣款，请确认付款方式可用：</p>
        <div style="background-color: #f3f4f6; padding: 15px; border-radius: 8px; margin: 20px 0;">
            <h3 style="margin-top: 0;">%s</h3>
            <p><strong>金额：</strong>￥%.2f</p>
            <p><strong>扣款日期：</strong>%s（%d 天后）</p>
        </div>
        <p>如需调整或取消该订阅，请登录订阅管家处理。</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">此邮件由系统自动发送，请勿回复。可在设置页管理提醒偏好。</p>
    </div>
</body>
</html>
`, serviceName, amount, dueDate.Format("2006-01-02"), daysUntilDue)

	return s.sendHTML(to, subject, body)
}

// SendOverdueNotice 发送逾期提醒邮件
func (s *Service) SendOverdueNotice(to, serviceName string, amount float64, dueDate time.Time, daysOverdue int) error {
	subject := fmt.Sprintf("付款逾期：%s - 订阅管家", serviceName)
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #dc2626;">付款逾期</h2>
        <p>您好，</p>
        <p>以下订阅付款已逾期 %d 天，请尽快更新付款方式以免服务中断：</p>
        <div style="background-color: #fef2f2; padding: 15px; border-radius: 8px; margin: 20px 0;">
            <h3 style="margin-top: 0;">%s</h3>
            <p><strong>金额：</strong>￥%.2f</p>
            <p><strong>原扣款日期：</strong>%s</p>
        </div>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">此邮件由系统自动发送，请勿回复。</p>
    </div>
</body>
</html>
`, daysOverdue, serviceName, amount, dueDate.Format("2006-01-02"))

	return s.sendHTML(to, subject, body)
}

// SendBudgetAlert 发送预算告警邮件
func (s *Service) SendBudgetAlert(to string, threshold, percentage, spending, limit float64) error {
	subject := "预算告警 - 订阅管家"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #d97706;">预算告警</h2>
        <p>您好，</p>
        <p>您的月度订阅支出已达预算的 <strong>%.1f%%</strong>（阈值 %.0f%%）：</p>
        <div style="background-color: #fffbeb; padding: 15px; border-radius: 8px; margin: 20px 0;">
            <p><strong>当前支出：</strong>￥%.2f / 月</p>
            <p><strong>月度预算：</strong>￥%.2f</p>
        </div>
        <p>可在预算页调整额度或清理不再使用的订阅。</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">此邮件由系统自动发送，请勿回复。</p>
    </div>
</body>
</html>
`, percentage, threshold, spending, limit)

	return s.sendHTML(to, subject, body)
}

// sendHTML 发送 HTML 邮件
func (s *Service) sendHTML(to, subject, body string) error {
	headers := make(map[string]string)
	headers["From"] = s.cfg.From
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String()))
}
