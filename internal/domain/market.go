package domain

// Ticker는 통화쌍의 현재 시세 정보를 표현합니다
type Ticker struct {
	Pair      string  // 통화쌍 (예: btc_jpy)
	Last      float64 // 최종 거래 가격
	Sell      float64 // 최저 매도 호가
	Buy       float64 // 최고 매수 호가
	Volume    float64 // 24시간 거래량
	Timestamp int64   // 시세 시각 (Unix 밀리초)
}

// Pair는 거래소가 정의한 통화쌍별 주문 제약 조건을 표현합니다
type Pair struct {
	Name            string  // 통화쌍 이름 (예: btc_jpy)
	BaseAsset       string  // 원자산 (예: btc)
	QuoteAsset      string  // 결제 자산 (예: jpy)
	UnitAmount      float64 // 최소 주문 수량
	LimitMaxAmount  float64 // 지정가 주문 최대 수량
	MarketMaxAmount float64 // 시장가 주문 최대 수량
	AmountDigits    int     // 수량 소수점 자릿수
	PriceDigits     int     // 가격 소수점 자릿수
	IsEnabled       bool    // 통화쌍 활성화 여부
	StopOrder       bool    // 주문 정지 여부
	StopMarketOrder bool    // 시장가 주문 정지 여부
	StopBuyOrder    bool    // 매수 주문 정지 여부
}

// Tradable은 이 통화쌍으로 시장가 매수 주문이 가능한지 여부를 반환합니다
func (p Pair) Tradable() bool {
	return p.IsEnabled && !p.StopOrder && !p.StopMarketOrder && !p.StopBuyOrder
}

// Balance는 계정의 자산별 잔고 정보를 표현합니다
type Balance struct {
	Asset        string  // 자산 심볼 (예: jpy, btc)
	OnhandAmount float64 // 보유 총액 (주문에 잠긴 금액 포함)
	FreeAmount   float64 // 사용 가능한 금액
	LockedAmount float64 // 주문 등에 잠긴 금액
}
