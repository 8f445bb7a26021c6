package storage

import "time"

type Account struct {
	ID       int64  `json:"accountId"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Message struct {
	ID        int64     `json:"messageId"`
	PostedBy  int64     `json:"postedBy"`
	Text      string    `json:"messageText"`
	CreatedAt time.Time `json:"createdAt"`
}
