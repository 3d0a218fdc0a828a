package stompframe

// HeaderName is one of the closed set of STOMP header keys this codec
// recognizes. A frame may carry at most one value per HeaderName.
type HeaderName string

// The closed set of recognized header names.
const (
	HeaderAcceptVersion HeaderName = "accept-version"
	HeaderAck           HeaderName = "ack"
	HeaderContentLength HeaderName = "content-length"
	HeaderContentType   HeaderName = "content-type"
	HeaderDestination   HeaderName = "destination"
	HeaderHeartBeat     HeaderName = "heart-beat"
	HeaderHost          HeaderName = "host"
	HeaderID            HeaderName = "id"
	HeaderLogin         HeaderName = "login"
	HeaderMessage       HeaderName = "message"
	HeaderMessageID     HeaderName = "message-id"
	HeaderPasscode      HeaderName = "passcode"
	HeaderReceipt       HeaderName = "receipt"
	HeaderReceiptID     HeaderName = "receipt-id"
	HeaderSession       HeaderName = "session"
	HeaderSubscription  HeaderName = "subscription"
	HeaderTransaction   HeaderName = "transaction"
	HeaderServer        HeaderName = "server"
	HeaderVersion       HeaderName = "version"
)

var validHeaders = map[string]HeaderName{
	string(HeaderAcceptVersion): HeaderAcceptVersion,
	string(HeaderAck):           HeaderAck,
	string(HeaderContentLength): HeaderContentLength,
	string(HeaderContentType):   HeaderContentType,
	string(HeaderDestination):   HeaderDestination,
	string(HeaderHeartBeat):     HeaderHeartBeat,
	string(HeaderHost):          HeaderHost,
	string(HeaderID):            HeaderID,
	string(HeaderLogin):         HeaderLogin,
	string(HeaderMessage):       HeaderMessage,
	string(HeaderMessageID):     HeaderMessageID,
	string(HeaderPasscode):      HeaderPasscode,
	string(HeaderReceipt):       HeaderReceipt,
	string(HeaderReceiptID):     HeaderReceiptID,
	string(HeaderSession):       HeaderSession,
	string(HeaderSubscription):  HeaderSubscription,
	string(HeaderTransaction):   HeaderTransaction,
	string(HeaderServer):        HeaderServer,
	string(HeaderVersion):       HeaderVersion,
}
