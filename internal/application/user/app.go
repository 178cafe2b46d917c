package user

import (
	"gitlab.com/garageonwheels/gow-web/internal/application/user/cmd"
	"gitlab.com/garageonwheels/gow-web/internal/application/user/query"
)

type App struct {
	Command Command
	Query   Query
}

type Command struct {
	Create         *cmd.CreateHandler
	VerifyOTP      *cmd.VerifyOTPHandler
	ResendOTP      *cmd.ResendOTPHandler
	Update         *cmd.UpdateHandler
	UpdateProfile  *cmd.UpdateProfileHandler
	Delete         *cmd.DeleteHandler
	ChangePassword *cmd.ChangePasswordHandler
}

type Query struct {
	Get  *query.GetHandler
	List *query.ListHandler
}

// API joins the command and query slices of the remote client.
type API interface {
	cmd.API
	query.API
}

type Args struct {
	API API
}

func NewApp(args Args) *App {
	return &App{
		Command: Command{
			Create:         cmd.NewCreateHandler(cmd.CreateHandlerArgs{API: args.API}),
			VerifyOTP:      cmd.NewVerifyOTPHandler(cmd.VerifyOTPHandlerArgs{API: args.API}),
			ResendOTP:      cmd.NewResendOTPHandler(cmd.ResendOTPHandlerArgs{API: args.API}),
			Update:         cmd.NewUpdateHandler(cmd.UpdateHandlerArgs{API: args.API}),
			UpdateProfile:  cmd.NewUpdateProfileHandler(cmd.UpdateProfileHandlerArgs{API: args.API}),
			Delete:         cmd.NewDeleteHandler(cmd.DeleteHandlerArgs{API: args.API}),
			ChangePassword: cmd.NewChangePasswordHandler(cmd.ChangePasswordHandlerArgs{API: args.API}),
		},
		Query: Query{
			Get:  query.NewGetHandler(query.GetHandlerArgs{API: args.API}),
			List: query.NewListHandler(query.ListHandlerArgs{API: args.API}),
		},
	}
}
