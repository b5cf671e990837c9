package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/congress/lib/command"
)

// CommandPost is the acknowledgement for an accepted command. The record
// the command produced is reachable through the links.
type CommandPost struct {
	cmd command.Command
}

func NewCommandPost(cmd command.Command) *CommandPost {
	r := &CommandPost{
		cmd: cmd,
	}
	return r
}

func (r CommandPost) GetMap() hal.Entry {
	return hal.Entry{
		"hash":   r.cmd.GetHash(),
		"type":   string(r.cmd.OperationType()),
		"source": r.cmd.Source(),
		"status": "applied",
	}
}

func (r CommandPost) Resource() *hal.Resource {
	h := hal.NewResource(r, r.LinkSelf())
	h.AddLink("campaign", hal.NewLink(URLCampaign))
	return h
}

func (r CommandPost) LinkSelf() string {
	return URLCommands
}
