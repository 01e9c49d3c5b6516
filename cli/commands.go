package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Process  ProcessCmd  `cmd:"" default:"withargs" help:"Replay a transactions file and print the resulting client balances."`
	Check    CheckCmd    `cmd:"" help:"Replay a transactions file and report whether it processes cleanly."`
	Generate GenerateCmd `cmd:"" help:"Generate a synthetic transactions file."`
	Doctor   DoctorCmd   `cmd:"" help:"Doctor utilities for debugging transactions files."`
	Web      WebCmd      `cmd:"" help:"Start a read-only web server for the balances of a transactions file."`
}

// InputFlags are shared by the commands that replay a transactions file.
type InputFlags struct {
	BufferSize     int  `help:"Capacity of the input read buffer in bytes." default:"4096" env:"PAYMENTS_BUFFER_SIZE"`
	OwnershipCheck bool `help:"Ignore disputes, resolves and chargebacks that do not come from the client owning the transaction."`
}
