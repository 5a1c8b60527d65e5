package services

import "net/http"

// Error is a service-level failure from the fixed taxonomy. The api layer
// maps it straight to the response envelope; services never reinterpret each
// other's errors.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrInvalidCredentials = &Error{Status: http.StatusUnauthorized, Message: "invalid email or password"}
	ErrUnauthorized       = &Error{Status: http.StatusUnauthorized, Message: "unauthorized"}

	ErrUserNotFound     = &Error{Status: http.StatusNotFound, Message: "user not found"}
	ErrRoomNotFound     = &Error{Status: http.StatusNotFound, Message: "room not found"}
	ErrCategoryNotFound = &Error{Status: http.StatusNotFound, Message: "rule category not found"}
	ErrRuleNotFound     = &Error{Status: http.StatusNotFound, Message: "rule not found"}
	ErrEventNotFound    = &Error{Status: http.StatusNotFound, Message: "event not found"}
	ErrTypeNotFound     = &Error{Status: http.StatusNotFound, Message: "personality type not found"}

	ErrForbiddenRoom = &Error{Status: http.StatusForbidden, Message: "not a member of this room"}
	ErrNoRoom        = &Error{Status: http.StatusForbidden, Message: "user does not belong to a room"}

	ErrDuplicateEmail        = &Error{Status: http.StatusConflict, Message: "email already registered"}
	ErrAlreadyInRoom         = &Error{Status: http.StatusConflict, Message: "user already belongs to a room"}
	ErrDuplicateCategoryName = &Error{Status: http.StatusConflict, Message: "rule category name already used"}
	ErrAlreadyChecked        = &Error{Status: http.StatusConflict, Message: "rule already checked today"}
	ErrAlreadyUnchecked      = &Error{Status: http.StatusConflict, Message: "rule is not checked today"}
	ErrAlreadyParticipant    = &Error{Status: http.StatusConflict, Message: "already joined this event"}

	ErrRoomFull              = &Error{Status: http.StatusBadRequest, Message: "room is full"}
	ErrNameTooLong           = &Error{Status: http.StatusBadRequest, Message: "name is too long"}
	ErrTooManyTags           = &Error{Status: http.StatusBadRequest, Message: "too many profile tags"}
	ErrNameRequired          = &Error{Status: http.StatusBadRequest, Message: "name is required"}
	ErrInvalidIcon           = &Error{Status: http.StatusBadRequest, Message: "unknown icon"}
	ErrInvalidDate           = &Error{Status: http.StatusBadRequest, Message: "invalid date"}
	ErrInvalidWeekday        = &Error{Status: http.StatusBadRequest, Message: "weekday must be between 0 and 6"}
	ErrCategoryLimit         = &Error{Status: http.StatusBadRequest, Message: "rule category limit reached"}
	ErrRuleLimit             = &Error{Status: http.StatusBadRequest, Message: "rule limit reached for this category"}
	ErrNotificationRuleLimit = &Error{Status: http.StatusBadRequest, Message: "notification rule limit reached"}
	ErrKeyRuleHasMembers     = &Error{Status: http.StatusBadRequest, Message: "a key rule cannot have members or notifications"}
	ErrKeyRuleFlagLocked     = &Error{Status: http.StatusBadRequest, Message: "the key flag cannot be changed after creation"}
	ErrRuleNeedsMember       = &Error{Status: http.StatusBadRequest, Message: "a rule needs at least one member or the key flag"}
	ErrMemberNeedsDay        = &Error{Status: http.StatusBadRequest, Message: "every rule member needs at least one day"}
	ErrNotResponsibleToday   = &Error{Status: http.StatusBadRequest, Message: "not responsible for this rule today"}
	ErrNotParticipant        = &Error{Status: http.StatusBadRequest, Message: "not a participant of this event"}
	ErrInvalidQuizAnswers    = &Error{Status: http.StatusBadRequest, Message: "quiz answers do not match the questions"}

	ErrInternal = &Error{Status: http.StatusInternalServerError, Message: "internal server error"}
)
