package mail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultEndpoint는 MailChannels 트랜잭션 메일 전송 API의 기본 URL입니다
const defaultEndpoint = "https://api.mailchannels.net/tx/v1/send"

// Client는 메일 기반 알림 클라이언트를 구현합니다
type Client struct {
	endpoint   string
	from       Address
	to         Address
	httpClient *http.Client
}

// ClientOption은 클라이언트 생성 옵션을 정의합니다
type ClientOption func(*Client)

// WithTimeout은 HTTP 클라이언트의 타임아웃을 설정합니다
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithEndpoint는 메일 전송 API의 URL을 설정합니다
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// NewClient는 새로운 메일 알림 클라이언트를 생성합니다
func NewClient(from, to Address, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   defaultEndpoint,
		from:       from,
		to:         to,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SendInsufficientBalance는 잔고 부족 알림 메일을 전송합니다
func (c *Client) SendInsufficientBalance(balance float64) error {
	body := fmt.Sprintf("잔고가 부족하여 매수를 건너뛰었습니다.\n현재 잔고: %.0f JPY\n\n이 메일은 btc-dca-bot이 자동 발송했습니다.", balance)
	return c.send("btc-dca-bot: 잔고 부족", body)
}

// SendError는 실행 실패 알림 메일을 전송합니다
func (c *Client) SendError(err error) error {
	body := fmt.Sprintf("매수 실행이 실패했습니다.\n원인: %v\n\n이 메일은 btc-dca-bot이 자동 발송했습니다.", err)
	return c.send("btc-dca-bot: 실행 실패", body)
}

// send는 제목과 본문으로 메일 전송 요청을 실행합니다
func (c *Client) send(subject, content string) error {
	msg := message{
		Personalizations: []personalization{
			{To: []Address{c.to}},
		},
		From:    c.from,
		Subject: subject,
		Content: []contentItem{
			{Type: "text/plain", Value: content},
		},
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("메일 본문 직렬화 실패: %w", err)
	}

	resp, err := c.httpClient.Post(c.endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("메일 전송 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("메일 전송 실패 (상태 코드: %d): %s", resp.StatusCode, string(body))
	}

	return nil
}
