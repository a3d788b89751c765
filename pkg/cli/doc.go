// Package cli holds helpers shared by the relay's commands: output
// formatting for one-shot results, typed command errors with exit codes and
// signal handling for graceful shutdown.
//
//	ctx, cancel := cli.SetupSignalHandler(context.Background())
//	defer cancel()
//	if err := srv.Start(ctx); err != nil {
//	    os.Exit(cli.ExitCode(err))
//	}
package cli
