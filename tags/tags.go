package tags

import "github.com/yohamta/donburi"

var (
	LocalAvatar  = donburi.NewTag().SetName("LocalAvatar")
	RemoteAvatar = donburi.NewTag().SetName("RemoteAvatar")
)

// Resolv tags for the prediction collision space
const (
	ResolvSolid  = "solid"
	ResolvAvatar = "avatar"
)
