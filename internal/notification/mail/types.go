package mail

// message는 메일 전송 API의 요청 본문을 정의합니다
type message struct {
	Personalizations []personalization `json:"personalizations"`
	From             Address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []contentItem     `json:"content"`
}

// personalization은 수신자 단위의 전송 설정을 정의합니다
type personalization struct {
	To []Address `json:"to"`
}

// contentItem은 메일 본문의 한 파트를 정의합니다
type contentItem struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Address는 메일 주소와 표시 이름을 정의합니다
type Address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
