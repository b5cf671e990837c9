package errors

var (
	StorageRecordAlreadyExists  = NewError(100, "record already exists in storage")
	StorageRecordDoesNotExist   = NewError(101, "record does not exist in storage")
	StorageCoreError            = NewError(102, "storage core error")
	HashDoesNotMatch            = NewError(103, "`Hash` does not match")
	SignatureVerificationFailed = NewError(104, "signature verification failed")
	BadPublicAddress            = NewError(105, "failed to parse public address")
	InvalidOperation            = NewError(106, "invalid operation")
	UnknownOperationType        = NewError(107, "unknown operation type")
	TypeOperationBodyNotMatched = NewError(108, "operation body does not match operation type")
	InvalidMessage              = NewError(109, "invalid message")
	MessageHasIncorrectTime     = NewError(110, "message has incorrect time")
	MessageVersionNotMatched    = NewError(111, "message version does not match")
	InvalidQueryString          = NewError(112, "found invalid query string")
	ContentTypeNotJSON          = NewError(113, "`Content-Type` is not `application/json`")
	PageQueryLimitMaxExceed     = NewError(114, "requested limit exceeds the maximum")
	BadRequestParameter         = NewError(115, "found invalid request parameter")
	HTTPProblem                 = NewError(116, "http request problem")
	NotMatcHTTPRouter           = NewError(117, "founded no matched HTTP router")
	NotImplemented              = NewError(118, "not implemented")

	Unauthorized       = NewError(130, "not authorized for this operation")
	InvalidTransition  = NewError(131, "operation is not allowed in the current phase")
	PreconditionNotMet = NewError(132, "operation precondition is not met")
	NoWinnerAvailable  = NewError(133, "winner is not available")

	CampaignDoesNotExist  = NewError(140, "campaign record does not exist")
	CampaignAlreadyExists = NewError(141, "campaign record already exists")
	VoterDoesNotExist     = NewError(142, "voter does not exist")
	ProposalDoesNotExist  = NewError(143, "proposal does not exist")
)
