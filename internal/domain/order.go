package domain

import "strconv"

// OrderRequest는 거래소에 전송할 주문 요청을 표현합니다
type OrderRequest struct {
	Pair   string    // 통화쌍 (예: btc_jpy)
	Amount float64   // 주문 수량 (원자산 기준)
	Side   OrderSide // 주문 방향
	Type   OrderType // 주문 유형
}

// AmountString은 주문 수량을 소수점 8자리 고정 문자열로 반환합니다
// 거래소 API는 수량을 문자열로 받으므로 직렬화 형식을 한 곳에서 고정합니다
func (r OrderRequest) AmountString() string {
	return strconv.FormatFloat(r.Amount, 'f', 8, 64)
}

// Order는 거래소가 반환한 주문 접수 결과를 표현합니다
type Order struct {
	OrderID         int64     // 주문 ID
	Pair            string    // 통화쌍
	Side            OrderSide // 주문 방향
	Type            OrderType // 주문 유형
	StartAmount     float64   // 주문 시 수량
	RemainingAmount float64   // 미체결 수량
	ExecutedAmount  float64   // 체결 수량
	AveragePrice    float64   // 평균 체결 가격
	OrderedAt       int64     // 주문 시각 (Unix 밀리초)
	Status          string    // 주문 상태 (예: FULLY_FILLED)
}

// TradePlan은 예산과 현재 가격으로부터 도출한 매수 계획을 표현합니다
type TradePlan struct {
	Budget   float64 // 투입 예산 (JPY)
	Price    float64 // 계획 수립 시점의 가격 (JPY)
	Quantity float64 // 매수 수량 (BTC, 소수점 8자리 반올림)
}

// AmountString은 매수 수량을 소수점 8자리 고정 문자열로 반환합니다
func (p TradePlan) AmountString() string {
	return strconv.FormatFloat(p.Quantity, 'f', 8, 64)
}
