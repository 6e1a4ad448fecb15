package domain

// OrderSide는 주문 방향을 정의합니다
type OrderSide string

const (
	Buy  OrderSide = "buy"
	Sell OrderSide = "sell"
)

// OrderType은 주문 유형을 정의합니다
type OrderType string

const (
	Market OrderType = "market"
	Limit  OrderType = "limit"
)

// DefaultPair는 기본 거래 대상 통화쌍입니다
const DefaultPair = "btc_jpy"

// QuoteAsset은 잔고 조회 대상 법정통화 자산입니다
const QuoteAsset = "jpy"
