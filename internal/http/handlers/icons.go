package handlers

import (
	"strings"

	"github.com/sentiment_dashboard/backend/internal/models"
)

const defaultChannelIcon = "globe"

// channelIcons maps a lower-cased channel name to the icon key the web client renders.
var channelIcons = map[string]string{
	"email":       "mail",
	"twitter":     "twitter",
	"x":           "twitter",
	"facebook":    "facebook",
	"instagram":   "instagram",
	"linkedin":    "linkedin",
	"live chat":   "message-circle",
	"chat":        "message-circle",
	"phone":       "phone",
	"sms":         "message-square",
	"app store":   "smartphone",
	"google play": "smartphone",
	"survey":      "clipboard",
	"website":     "globe",
}

func ChannelIcon(name string) string {
	if icon, ok := channelIcons[strings.ToLower(strings.TrimSpace(name))]; ok {
		return icon
	}
	return defaultChannelIcon
}

type ChannelView struct {
	models.Channel
	Icon string `json:"icon"`
}

func newChannelView(c models.Channel) ChannelView {
	return ChannelView{Channel: c, Icon: ChannelIcon(c.Name)}
}
