package model

import "github.com/zeromicro/go-zero/core/logx"

// Config 对应于 config.yaml 的顶级结构
type Config struct {
	Token    string       `mapstructure:"TOKEN"`
	Commands Commands     `mapstructure:"commands"`
	Review   Review       `mapstructure:"review"`
	Storage  Storage      `mapstructure:"storage"`
	Health   Health       `mapstructure:"health"`
	Log      logx.LogConf `mapstructure:"log"`
}

// Review 对应 "review" 部分
type Review struct {
	ChannelID  string `mapstructure:"channel_id"`
	ReviewerID string `mapstructure:"reviewer_id"`
}

// Commands 对应 "commands" 部分
type Commands struct {
	AllowGuilds []string `mapstructure:"allowguilds"`
}

// Storage 对应 "storage" 部分
type Storage struct {
	Path string `mapstructure:"path"`
}

// Health 对应 "health" 部分
type Health struct {
	Addr string `mapstructure:"addr"`
}
