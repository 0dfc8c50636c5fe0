package models

// Subscription describes one (topic, route) pair the consumer listens on.
// The broker runtime reads this at registration time; business callers never
// touch it.
type Subscription struct {
	PubSubName string `json:"pubsubname"`
	Topic      string `json:"topic"`
	Route      string `json:"route"`
}
