// internal/exchange/bitbank/client.go
package bitbank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/3kz2501/btc-dca-bot-4-bitbank/internal/domain"
	"github.com/3kz2501/btc-dca-bot-4-bitbank/internal/exchange"
)

// apiVersion은 프라이빗 API의 버전 경로 접두사입니다
// GET 요청의 서명 페이로드에도 그대로 포함됩니다
const apiVersion = "/v1"

// Client는 bitbank API 클라이언트를 구현합니다
type Client struct {
	apiKey     string
	apiSecret  string
	baseURL    string
	publicURL  string
	httpClient *http.Client
	nonce      *nonceSource
}

// ClientOption은 클라이언트 생성 옵션을 정의합니다
type ClientOption func(*Client)

// WithTimeout은 HTTP 클라이언트의 타임아웃을 설정합니다
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithBaseURL은 프라이빗 API의 기본 URL을 설정합니다
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithPublicBaseURL은 퍼블릭 API의 기본 URL을 설정합니다
func WithPublicBaseURL(publicURL string) ClientOption {
	return func(c *Client) {
		c.publicURL = publicURL
	}
}

// NewClient는 새로운 bitbank API 클라이언트를 생성합니다
func NewClient(apiKey, apiSecret string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		baseURL:    "https://api.bitbank.cc",
		publicURL:  "https://public.bitbank.cc",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		nonce:      newNonceSource(),
	}

	// 옵션 적용
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// doPublic은 퍼블릭 API에 GET 요청을 실행하고 응답 본문을 반환합니다
func (c *Client) doPublic(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("요청 생성 실패: %w", err)
	}

	return c.do(req)
}

// doPrivate은 프라이빗 API에 인증 요청을 실행하고 응답 본문을 반환합니다
// body가 nil이면 GET 요청이 되고 서명 페이로드는 "/v1" + 경로가 됩니다
// body가 있으면 POST 요청이 되고 전송되는 본문 그대로가 서명 페이로드가 됩니다
func (c *Client) doPrivate(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	nonce := c.nonce.Next()

	payload := apiVersion + path
	var reader io.Reader
	if body != nil {
		payload = string(body)
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiVersion+path, reader)
	if err != nil {
		return nil, fmt.Errorf("요청 생성 실패: %w", err)
	}

	// 인증 헤더 설정
	req.Header.Set("ACCESS-KEY", c.apiKey)
	req.Header.Set("ACCESS-NONCE", nonce)
	req.Header.Set("ACCESS-SIGNATURE", sign(c.apiSecret, nonce, payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req)
}

// do는 HTTP 요청을 실행하고 상태 코드를 검사한 뒤 응답 본문을 반환합니다
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API 요청 실패: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("응답 읽기 실패: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &exchange.APIError{Status: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// GetTicker는 통화쌍의 현재 시세를 조회합니다
func (c *Client) GetTicker(ctx context.Context, pair string) (*domain.Ticker, error) {
	body, err := c.doPublic(ctx, c.publicURL+"/"+pair+"/ticker")
	if err != nil {
		return nil, err
	}

	var result struct {
		Success int `json:"success"`
		Data    struct {
			Sell      string `json:"sell"`
			Buy       string `json:"buy"`
			Last      string `json:"last"`
			Vol       string `json:"vol"`
			Timestamp int64  `json:"timestamp"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("시세 응답 파싱 실패: %w", err)
	}
	if result.Success != 1 {
		return nil, &exchange.APIError{Status: http.StatusOK, Body: string(body)}
	}

	last, err := parseFloat(result.Data.Last, "last")
	if err != nil {
		return nil, err
	}
	sell, err := parseFloat(result.Data.Sell, "sell")
	if err != nil {
		return nil, err
	}
	buy, err := parseFloat(result.Data.Buy, "buy")
	if err != nil {
		return nil, err
	}
	vol, err := parseFloat(result.Data.Vol, "vol")
	if err != nil {
		return nil, err
	}

	return &domain.Ticker{
		Pair:      pair,
		Last:      last,
		Sell:      sell,
		Buy:       buy,
		Volume:    vol,
		Timestamp: result.Data.Timestamp,
	}, nil
}

// GetPairs는 거래 가능한 통화쌍 목록과 주문 제약 조건을 조회합니다
func (c *Client) GetPairs(ctx context.Context) ([]domain.Pair, error) {
	body, err := c.doPublic(ctx, c.baseURL+apiVersion+"/spot/pairs")
	if err != nil {
		return nil, err
	}

	var result struct {
		Success int `json:"success"`
		Data    struct {
			Pairs []struct {
				Name            string `json:"name"`
				BaseAsset       string `json:"base_asset"`
				QuoteAsset      string `json:"quote_asset"`
				UnitAmount      string `json:"unit_amount"`
				LimitMaxAmount  string `json:"limit_max_amount"`
				MarketMaxAmount string `json:"market_max_amount"`
				AmountDigits    int    `json:"amount_digits"`
				PriceDigits     int    `json:"price_digits"`
				IsEnabled       bool   `json:"is_enabled"`
				StopOrder       bool   `json:"stop_order"`
				StopMarketOrder bool   `json:"stop_market_order"`
				StopBuyOrder    bool   `json:"stop_buy_order"`
			} `json:"pairs"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("통화쌍 응답 파싱 실패: %w", err)
	}
	if result.Success != 1 {
		return nil, &exchange.APIError{Status: http.StatusOK, Body: string(body)}
	}

	pairs := make([]domain.Pair, 0, len(result.Data.Pairs))
	for _, p := range result.Data.Pairs {
		unit, err := parseFloat(p.UnitAmount, "unit_amount")
		if err != nil {
			return nil, err
		}
		limitMax, err := parseFloat(p.LimitMaxAmount, "limit_max_amount")
		if err != nil {
			return nil, err
		}
		marketMax, err := parseFloat(p.MarketMaxAmount, "market_max_amount")
		if err != nil {
			return nil, err
		}

		pairs = append(pairs, domain.Pair{
			Name:            p.Name,
			BaseAsset:       p.BaseAsset,
			QuoteAsset:      p.QuoteAsset,
			UnitAmount:      unit,
			LimitMaxAmount:  limitMax,
			MarketMaxAmount: marketMax,
			AmountDigits:    p.AmountDigits,
			PriceDigits:     p.PriceDigits,
			IsEnabled:       p.IsEnabled,
			StopOrder:       p.StopOrder,
			StopMarketOrder: p.StopMarketOrder,
			StopBuyOrder:    p.StopBuyOrder,
		})
	}

	return pairs, nil
}

// GetBalance는 지정한 자산의 잔고를 조회합니다
// 자산이 잔고 목록에 없으면 에러가 아니라 0 잔고를 반환합니다
func (c *Client) GetBalance(ctx context.Context, asset string) (*domain.Balance, error) {
	body, err := c.doPrivate(ctx, http.MethodGet, "/user/assets", nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Success int `json:"success"`
		Data    struct {
			Assets []struct {
				Asset        string `json:"asset"`
				OnhandAmount string `json:"onhand_amount"`
				FreeAmount   string `json:"free_amount"`
				LockedAmount string `json:"locked_amount"`
			} `json:"assets"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("잔고 응답 파싱 실패: %w", err)
	}
	if result.Success != 1 {
		return nil, &exchange.APIError{Status: http.StatusOK, Body: string(body)}
	}

	for _, a := range result.Data.Assets {
		if a.Asset != asset {
			continue
		}

		onhand, err := parseFloat(a.OnhandAmount, "onhand_amount")
		if err != nil {
			return nil, err
		}
		free, err := parseFloat(a.FreeAmount, "free_amount")
		if err != nil {
			return nil, err
		}
		locked, err := parseFloat(a.LockedAmount, "locked_amount")
		if err != nil {
			return nil, err
		}

		return &domain.Balance{
			Asset:        a.Asset,
			OnhandAmount: onhand,
			FreeAmount:   free,
			LockedAmount: locked,
		}, nil
	}

	return &domain.Balance{Asset: asset}, nil
}

// PlaceMarketBuyOrder는 시장가 매수 주문을 전송합니다
// 거래소가 주문을 거부하면 OrderRejectedError에 응답 본문을 담아 반환합니다
func (c *Client) PlaceMarketBuyOrder(ctx context.Context, pair string, amount float64) (*domain.Order, error) {
	order := domain.OrderRequest{
		Pair:   pair,
		Amount: amount,
		Side:   domain.Buy,
		Type:   domain.Market,
	}

	// 필드 순서가 서명 대상 본문을 결정하므로 구조체 선언 순서를 유지합니다
	reqBody, err := json.Marshal(struct {
		Pair   string `json:"pair"`
		Amount string `json:"amount"`
		Side   string `json:"side"`
		Type   string `json:"type"`
	}{
		Pair:   order.Pair,
		Amount: order.AmountString(),
		Side:   string(order.Side),
		Type:   string(order.Type),
	})
	if err != nil {
		return nil, fmt.Errorf("주문 본문 직렬화 실패: %w", err)
	}

	body, err := c.doPrivate(ctx, http.MethodPost, "/user/spot/order", reqBody)
	if err != nil {
		return nil, err
	}

	var result struct {
		Success int `json:"success"`
		Data    struct {
			OrderID         int64   `json:"order_id"`
			Pair            string  `json:"pair"`
			Side            string  `json:"side"`
			Type            string  `json:"type"`
			StartAmount     *string `json:"start_amount"`
			RemainingAmount *string `json:"remaining_amount"`
			ExecutedAmount  string  `json:"executed_amount"`
			AveragePrice    string  `json:"average_price"`
			OrderedAt       int64   `json:"ordered_at"`
			Status          string  `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("주문 응답 파싱 실패: %w", err)
	}
	if result.Success != 1 {
		return nil, &exchange.OrderRejectedError{Body: string(body)}
	}

	executed, err := parseFloat(result.Data.ExecutedAmount, "executed_amount")
	if err != nil {
		return nil, err
	}
	average, err := parseFloat(result.Data.AveragePrice, "average_price")
	if err != nil {
		return nil, err
	}
	start, err := parseOptFloat(result.Data.StartAmount, "start_amount")
	if err != nil {
		return nil, err
	}
	remaining, err := parseOptFloat(result.Data.RemainingAmount, "remaining_amount")
	if err != nil {
		return nil, err
	}

	return &domain.Order{
		OrderID:         result.Data.OrderID,
		Pair:            result.Data.Pair,
		Side:            domain.OrderSide(result.Data.Side),
		Type:            domain.OrderType(result.Data.Type),
		StartAmount:     start,
		RemainingAmount: remaining,
		ExecutedAmount:  executed,
		AveragePrice:    average,
		OrderedAt:       result.Data.OrderedAt,
		Status:          result.Data.Status,
	}, nil
}

// parseFloat은 거래소가 문자열로 반환하는 수치 필드를 float64로 변환합니다
func parseFloat(s, field string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s 파싱 실패 (%q): %w", field, s, err)
	}
	return v, nil
}

// parseOptFloat은 null일 수 있는 수치 필드를 변환합니다 (null이면 0)
func parseOptFloat(s *string, field string) (float64, error) {
	if s == nil {
		return 0, nil
	}
	return parseFloat(*s, field)
}
