// models/gameplay.go
package models

import "github.com/gosimple/slug"

// GameMode is a static descriptor of a playable mode. These are not stored;
// the game design team ships them with the service.
type GameMode struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	PlayerCount int    `json:"playerCount"`
	AvgDuration int    `json:"avgDuration"` // minutes
}

var GameModes = []GameMode{
	{
		Name:        "经典模式",
		Description: "传统撤离射击玩法，收集物资并成功撤离",
		PlayerCount: 85200,
		AvgDuration: 20,
	},
	{
		Name:        "团队竞技",
		Description: "4v4团队对抗，消灭敌方队伍获得胜利",
		PlayerCount: 28400,
		AvgDuration: 15,
	},
	{
		Name:        "生存挑战",
		Description: "单人或小队生存模式，坚持到最后",
		PlayerCount: 12400,
		AvgDuration: 25,
	},
}

var GameplayTips = []string{
	"合理规划撤离路线，避免被埋伏",
	"优先收集高价值物资，注意背包容量",
	"熟悉地图布局，了解主要交战区域",
	"团队配合是成功的关键",
	"注意听声辨位，提前发现敌人",
}

func init() {
	// Front-end uses the slugs as chart/DOM ids, so they must be ASCII.
	for i := range GameModes {
		GameModes[i].Slug = slug.Make(GameModes[i].Name)
	}
}
