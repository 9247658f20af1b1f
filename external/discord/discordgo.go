package discord

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	discordpkg "github.com/foxseedlab/edittime/internal/discord"
)

const (
	reportAttachmentContentType = "text/plain; charset=utf-8"
	maxMessageContentRunes      = 2000
)

// Client posts through the REST API only. A batch run never opens the gateway.
type Client struct {
	session *discordgo.Session
}

func NewClient(token string) (discordpkg.Client, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	return &Client{session: s}, nil
}

func (c *Client) SendChannelMessage(channelID, content string) error {
	_, err := c.session.ChannelMessageSend(channelID, truncateContent(content))
	return err
}

func (c *Client) SendChannelMessageWithFile(msg discordpkg.FileMessage) error {
	_, err := c.session.ChannelMessageSendComplex(msg.ChannelID, &discordgo.MessageSend{
		Content: truncateContent(msg.Content),
		Files: []*discordgo.File{
			{Name: msg.Filename, ContentType: reportAttachmentContentType, Reader: bytes.NewReader(msg.FileBody)},
		},
	})
	if isRESTForbidden(err) {
		return fmt.Errorf("bot is not allowed to post in channel %s: %w", msg.ChannelID, err)
	}
	return err
}

// Shutdown is called by the injector when the run ends.
func (c *Client) Shutdown() error {
	if c.session != nil {
		return c.session.Close()
	}
	return nil
}

func truncateContent(content string) string {
	runes := []rune(content)
	if len(runes) <= maxMessageContentRunes {
		return content
	}
	return string(runes[:maxMessageContentRunes-1]) + "…"
}

func isRESTForbidden(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Response == nil {
		return false
	}
	return restErr.Response.StatusCode == http.StatusForbidden
}
