// Package bootstrap hands a resolved script over to the app runtime.
//
// The default Runner starts the configured interpreter as a child process
// with the script path and its arguments, streams its output, and describes
// the launch through environment variables:
//
//	SPROUT_RUNNING_UNDER_LAUNCHER  "true" when started by `sprout run`
//	SPROUT_COMMAND_LINE            the full command line that started the run
//	SPROUT_MAIN_SCRIPT_PATH        the resolved script path
//	SPROUT_CONFIG_<PARAM>          every option given on the command line
//
// A non-zero exit status is reported as an *ExitError carrying the code.
package bootstrap
