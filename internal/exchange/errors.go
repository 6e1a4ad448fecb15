package exchange

import "fmt"

// APIError는 거래소 API가 반환한 실패 응답을 표현합니다
// HTTP 에러 상태 코드와 2xx 응답 안의 실패 플래그(success: 0) 모두 여기에 해당합니다
type APIError struct {
	Status int    // HTTP 상태 코드
	Body   string // 응답 본문 원문
}

// Error는 error 인터페이스를 구현합니다
func (e *APIError) Error() string {
	return fmt.Sprintf("거래소 API 에러 (상태 코드: %d): %s", e.Status, e.Body)
}

// OrderRejectedError는 주문 요청이 거래소에서 거부된 경우를 표현합니다
// 전송 실패나 HTTP 에러와 구분해 응답 본문을 그대로 보존합니다
type OrderRejectedError struct {
	Body string // 거부 응답 본문 원문
}

// Error는 error 인터페이스를 구현합니다
func (e *OrderRejectedError) Error() string {
	return fmt.Sprintf("주문이 거부되었습니다: %s", e.Body)
}
