package stompframe

// Command is one of the closed set of STOMP 1.2 command tokens this
// codec recognizes. The zero value is not a valid command.
type Command string

// The closed set of STOMP 1.2 commands, client- and server-generated.
const (
	CommandAbort        Command = "ABORT"
	CommandAck          Command = "ACK"
	CommandBegin        Command = "BEGIN"
	CommandCommit       Command = "COMMIT"
	CommandConnect      Command = "CONNECT"
	CommandConnected    Command = "CONNECTED"
	CommandDisconnect   Command = "DISCONNECT"
	CommandError        Command = "ERROR"
	CommandMessage      Command = "MESSAGE"
	CommandNack         Command = "NACK"
	CommandReceipt      Command = "RECEIPT"
	CommandSend         Command = "SEND"
	CommandStomp        Command = "STOMP"
	CommandSubscribe    Command = "SUBSCRIBE"
	CommandUnsubscribe  Command = "UNSUBSCRIBE"
)

var validCommands = map[string]Command{
	string(CommandAbort):       CommandAbort,
	string(CommandAck):         CommandAck,
	string(CommandBegin):       CommandBegin,
	string(CommandCommit):      CommandCommit,
	string(CommandConnect):     CommandConnect,
	string(CommandConnected):   CommandConnected,
	string(CommandDisconnect):  CommandDisconnect,
	string(CommandError):       CommandError,
	string(CommandMessage):     CommandMessage,
	string(CommandNack):        CommandNack,
	string(CommandReceipt):     CommandReceipt,
	string(CommandSend):        CommandSend,
	string(CommandStomp):       CommandStomp,
	string(CommandSubscribe):   CommandSubscribe,
	string(CommandUnsubscribe): CommandUnsubscribe,
}

// requiredHeaders is the per-command required-header matrix from the
// STOMP 1.2 grammar this codec enforces. Commands absent from this map
// (ERROR, RECEIPT, DISCONNECT) have no required headers.
var requiredHeaders = map[Command][]HeaderName{
	CommandConnect:     {HeaderAcceptVersion, HeaderHost},
	CommandStomp:       {HeaderAcceptVersion, HeaderHost},
	CommandConnected:   {HeaderVersion},
	CommandSend:        {HeaderDestination},
	CommandSubscribe:   {HeaderDestination, HeaderID},
	CommandUnsubscribe: {HeaderID},
	CommandAck:         {HeaderID},
	CommandNack:        {HeaderID},
	CommandBegin:       {HeaderTransaction},
	CommandCommit:      {HeaderTransaction},
	CommandAbort:       {HeaderTransaction},
	CommandMessage:     {HeaderDestination, HeaderMessageID, HeaderSubscription},
}
