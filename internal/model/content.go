package model

// GeneratedContent AI 生成的小红书内容
// 每次请求现算，不单独持久化，提交记录里会嵌一份副本
type GeneratedContent struct {
	Title    string   `json:"title" bson:"title"`
	MainText string   `json:"mainText" bson:"mainText"`
	Hashtags []string `json:"hashtags" bson:"hashtags"`
}
