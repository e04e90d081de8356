package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	coretelegram "github.com/tempobot/tempo/core/telegram"
	"github.com/tempobot/tempo/core/telegram/commands"
	tghelpers "github.com/tempobot/tempo/core/telegram/helpers"
	"github.com/tempobot/tempo/core/telegram/keyboard"
	"github.com/tempobot/tempo/core/telegram/router"
	"github.com/tempobot/tempo/core/tracker"

	tele "gopkg.in/telebot.v4"
)

type commandSpec struct {
	name        string
	description string
	cmd         tracker.Command
}

var commandSpecs = []commandSpec{
	{name: "/help", description: "display this text.", cmd: tracker.CmdHelp},
	{name: "/work", description: "start tracking work.", cmd: tracker.CmdWork},
	{name: "/rest", description: "stop tracking work.", cmd: tracker.CmdRest},
	{name: "/status", description: "show current status.", cmd: tracker.CmdStatus},
	{name: "/reset", description: "reset working time.", cmd: tracker.CmdReset},
}

func helpText() string {
	var b strings.Builder
	b.WriteString("These commands are supported:")
	for _, spec := range commandSpecs {
		b.WriteString("\n")
		b.WriteString(spec.name)
		b.WriteString(" — ")
		b.WriteString(spec.description)
	}
	return b.String()
}

func (a *App) buildRegistry() *coretelegram.Registry {
	reg := coretelegram.NewRegistry()
	for _, spec := range commandSpecs {
		reg.RegisterCommand(spec.name, commands.Command{
			Handler:     a.commandHandler(spec.cmd),
			Description: spec.description,
		})
	}
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     a.handleStats,
		Description: "show active session count.",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.SetTextFallback(a.handleText)
	return reg
}

func (a *App) commandHandler(cmd tracker.Command) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := tghelpers.BuildContext(c)
		reply, err := a.service.Command(ctx, c.Chat().ID, cmd)
		if err != nil {
			return err
		}
		return respond(c, reply)
	}
}

func (a *App) handleText(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	reply, err := a.service.Text(ctx, c.Chat().ID, c.Text())
	if err != nil {
		return err
	}
	return respond(c, reply)
}

func (a *App) handleStats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	n, err := a.service.ActiveSessions(ctx)
	if err != nil {
		if errors.Is(err, tracker.ErrNoCounter) {
			return tghelpers.SendText(c, "Session counts are not available for this store.")
		}
		return err
	}
	return tghelpers.SendText(c, fmt.Sprintf("Active sessions: %d", n))
}

func respond(c tele.Context, reply tracker.Reply) error {
	return tghelpers.SendWithMarkup(c, reply.Text, keyboard.FromActions(reply.Actions))
}

// TelegramRunOptions assembles routes and middleware for the bot runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	if a.service == nil {
		return coretelegram.RunOptions{}, fmt.Errorf("bot: app not bootstrapped")
	}

	reg := a.buildRegistry()

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Core.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoutes(reg, router.TextOptions{
		FreeText: a.handleText,
	})...)

	return coretelegram.RunOptions{
		Config:      a.CoreConfig(),
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.CoreConfig(), nil),
		Routes:      routes,
		OnStop: func(_ context.Context, _ coretelegram.Runtime) error {
			return a.Close()
		},
	}, nil
}
