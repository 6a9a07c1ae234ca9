package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/idolcode/internal/client/workspace"
	"github.com/dmitrijs2005/idolcode/internal/common"
)

const workspaceHelp = `Workspace commands:
  problem                 show the statement again
  files                   list files (* marks the active one)
  new                     add a file
  use <file>              switch the active file
  close <file>            close a file
  lang <language> [file]  change language (resets the file to its template)
  show                    print the active file
  edit                    paste new contents for the active file
  load <path>             replace the active file with a local file
  export                  write the active file to the solutions folder
  test                    run the sample tests
  ask <message>           ask the duck (Coach mode only)
  chat                    show the conversation
  mode [coach|rival]      show or switch the mode
  timer [start <min>|pause|resume|stop]
  submit                  save and print the submission link
  back                    return to the main prompt`

// runWorkspace is the nested REPL of an open problem. It returns when the
// user goes back or input ends.
func (a *App) runWorkspace(ctx context.Context, ws *workspace.Workspace) error {
	a.println(renderProblem(ws.Problem()))
	a.println()
	a.println(renderFiles(ws.Files(), ws.Active().ID))
	a.println(hintStyle.Render("Type 'help' for workspace commands, 'back' to leave."))

	for {
		printlnFn(fmt.Sprintf("ws %s [%s] > ", ws.Key(), ws.Mode()))
		line, err := readLine(a.reader)
		if err != nil {
			return nil
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			a.println(workspaceHelp)
		case "problem", "statement":
			a.println(renderProblem(ws.Problem()))
		case "files":
			a.println(renderFiles(ws.Files(), ws.Active().ID))
		case "new":
			f := ws.AddFile()
			a.success(fmt.Sprintf("Created %s%s", f.Name, workspace.Info(f.Language).Extension))
		case "use":
			a.withFile(ws, args, "Usage: use <file>", ws.Activate)
		case "close":
			a.withFile(ws, args, "Usage: close <file>", ws.CloseFile)
		case "lang":
			a.changeLanguage(ws, args)
		case "show":
			f := ws.Active()
			a.println(dimStyle.Render(fmt.Sprintf("── %s%s ──", f.Name, workspace.Info(f.Language).Extension)))
			a.println(strings.TrimRight(f.Content, "\n"))
		case "edit":
			a.edit(ws)
		case "load":
			if len(args) != 1 {
				a.fail("Usage: load <path>")
				continue
			}
			if err := ws.Load(args[0]); err != nil {
				a.fail(err.Error())
				continue
			}
			a.success("Loaded " + args[0])
		case "export":
			path, err := ws.Export()
			if err != nil {
				a.fail(err.Error())
				continue
			}
			a.success("Saved to " + path)
		case "test":
			a.runTests(ctx, ws)
		case "ask":
			a.ask(ctx, ws, strings.Join(args, " "))
		case "chat":
			if ws.Mode() == workspace.ModeRival {
				a.fail(msgChatLocked)
				continue
			}
			a.println(renderChat(ws.ChatHistory()))
		case "mode":
			a.switchMode(ws, args)
		case "timer":
			a.timer(ws, args)
		case "submit":
			url, err := ws.Submit(ctx)
			if err != nil {
				a.notice("Your drafts could not be saved.")
			}
			a.println("Submit your solution at: " + titleStyle.Render(url))
		case "back", "exit", "quit":
			return nil
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func (a *App) withFile(ws *workspace.Workspace, args []string, usage string, op func(id string) error) {
	if len(args) != 1 {
		a.fail(usage)
		return
	}
	id, err := ws.Resolve(args[0])
	if err == nil {
		err = op(id)
	}
	if err != nil {
		a.fail(workspaceMessage(err))
		return
	}
	a.println(renderFiles(ws.Files(), ws.Active().ID))
}

const (
	msgChatLocked    = "Chat is locked in Rival mode!"
	msgNoTestCases   = "No test cases available for this problem"
	msgLastFile      = "Cannot close the last file"
	msgCountdownHeld = "The countdown runs in Rival mode."
)

// workspaceMessage maps workspace errors to the text shown in the shell.
func workspaceMessage(err error) string {
	switch {
	case errors.Is(err, workspace.ErrChatLocked):
		return msgChatLocked
	case errors.Is(err, workspace.ErrNoTestCases):
		return msgNoTestCases
	case errors.Is(err, workspace.ErrLastFile):
		return msgLastFile
	default:
		return err.Error()
	}
}

func (a *App) changeLanguage(ws *workspace.Workspace, args []string) {
	if len(args) < 1 || len(args) > 2 {
		a.fail("Usage: lang <language> [file]")
		return
	}
	lang, err := workspace.ParseLanguage(args[0])
	if err != nil {
		a.fail(err.Error())
		return
	}
	id := ws.Active().ID
	if len(args) == 2 {
		if id, err = ws.Resolve(args[1]); err != nil {
			a.fail(err.Error())
			return
		}
	}
	if err := ws.SetLanguage(id, lang); err != nil {
		a.fail(err.Error())
		return
	}
	a.success("Switched to " + workspace.Info(lang).Name)
}

func (a *App) edit(ws *workspace.Workspace) {
	f := ws.Active()
	content, err := GetMultiline(a.reader, fmt.Sprintf("Paste the new contents of %s%s", f.Name, workspace.Info(f.Language).Extension), a.out)
	if err != nil {
		a.fail(err.Error())
		return
	}
	if content == "" {
		a.println(hintStyle.Render("Nothing changed."))
		return
	}
	ws.SetContent(content)
	a.success("Saved")
}

func (a *App) runTests(ctx context.Context, ws *workspace.Workspace) {
	a.println(dimStyle.Render("Running tests…"))
	run, err := ws.RunTests(ctx)
	if err != nil {
		if errors.Is(err, workspace.ErrNoTestCases) {
			a.fail(msgNoTestCases)
			return
		}
		a.report(err, "Failed to run tests")
		return
	}
	a.println(renderTestRun(run))
}

func (a *App) ask(ctx context.Context, ws *workspace.Workspace, msg string) {
	reply, err := ws.Chat(ctx, msg)
	switch {
	case errors.Is(err, workspace.ErrChatLocked):
		a.fail(msgChatLocked)
	case errors.Is(err, common.ErrValidation):
		a.fail(common.UserMessage(err))
	case err != nil:
		a.report(err, workspace.FallbackReply)
	default:
		a.println(titleStyle.Render("duck"))
		a.println(renderMarkdown(reply))
	}
}

func (a *App) switchMode(ws *workspace.Workspace, args []string) {
	if len(args) == 0 {
		a.println("Mode: " + modeBadge(ws.Mode()))
		return
	}
	mode, ok := workspace.ParseMode(args[0])
	if !ok {
		a.fail("Usage: mode [coach|rival]")
		return
	}

	if mode == workspace.ModeRival {
		if state, _ := ws.Timer().State(); state == workspace.TimerStopped || state == workspace.TimerExpired {
			minutes, ok := a.askPreset()
			if !ok {
				return
			}
			if err := ws.Timer().Start(minutes); err != nil {
				a.fail(err.Error())
				return
			}
			ws.SetMode(mode)
			a.success(fmt.Sprintf("Rival mode activated! %d minutes on the clock.", minutes))
			return
		}
	}
	ws.SetMode(mode)
	a.println("Mode: " + modeBadge(mode))
}

func (a *App) askPreset() (int, bool) {
	answer, err := getSimpleText(a.reader, fmt.Sprintf("Choose a timer in minutes %v", workspace.TimerPresets), a.out)
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(answer)
	if err != nil {
		a.fail("Timer length must be one of the presets")
		return 0, false
	}
	return minutes, true
}

func (a *App) timer(ws *workspace.Workspace, args []string) {
	t := ws.Timer()
	var err error
	switch {
	case len(args) == 0:
	case args[0] == "start" && len(args) == 2:
		minutes, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			err = workspace.ErrInvalidPreset
			break
		}
		err = t.Start(minutes)
	case args[0] == "pause":
		err = t.Pause()
	case args[0] == "resume":
		err = t.Resume()
	case args[0] == "stop":
		t.Stop()
	default:
		a.fail("Usage: timer [start <min>|pause|resume|stop]")
		return
	}
	if err != nil {
		a.fail(err.Error())
		return
	}
	state, left := t.State()
	a.println(renderTimer(state, left))
	if state == workspace.TimerRunning && ws.Mode() != workspace.ModeRival {
		a.println(hintStyle.Render(msgCountdownHeld))
	}
}
