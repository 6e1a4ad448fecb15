package notification

// Notifier는 운영자 알림 전송 인터페이스를 정의합니다
type Notifier interface {
	// SendInsufficientBalance는 잔고 부족 알림을 전송합니다
	// balance는 조회 시점의 법정통화 잔고입니다
	SendInsufficientBalance(balance float64) error

	// SendError는 실행 실패 알림을 전송합니다
	SendError(err error) error
}
