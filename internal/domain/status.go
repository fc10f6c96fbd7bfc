package domain

import "fmt"

type Role string

const (
	RoleDonor         Role = "donor"
	RoleBeneficiary   Role = "beneficiary"
	RoleAdministrator Role = "administrator"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleDonor, RoleBeneficiary, RoleAdministrator:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role '%s'", s)
}

type FoodCondition string

const (
	ConditionNew    FoodCondition = "new"
	ConditionOpened FoodCondition = "opened"
	ConditionUsed   FoodCondition = "used"
)

func ParseFoodCondition(s string) (FoodCondition, error) {
	switch FoodCondition(s) {
	case ConditionNew, ConditionOpened, ConditionUsed:
		return FoodCondition(s), nil
	}
	return "", fmt.Errorf("unknown food condition '%s'", s)
}

type PublicationStatus string

const (
	PublicationAvailable PublicationStatus = "available"
	PublicationReserved  PublicationStatus = "reserved"
	PublicationCompleted PublicationStatus = "completed"
)

// publicationTransitions is the closed transition table for publications.
// Reserved and completed are only reachable through the pickup state machine.
var publicationTransitions = map[PublicationStatus]PublicationStatus{
	PublicationAvailable: PublicationReserved,
	PublicationReserved:  PublicationCompleted,
}

// CanTransitionTo reports whether a publication may move from its current
// status to the target one.
func (s PublicationStatus) CanTransitionTo(target PublicationStatus) bool {
	next, ok := publicationTransitions[s]
	return ok && next == target
}

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestEnRoute   RequestStatus = "en_route"
	RequestDelivered RequestStatus = "delivered"
)

func ParseRequestStatus(s string) (RequestStatus, error) {
	switch RequestStatus(s) {
	case RequestPending, RequestEnRoute, RequestDelivered:
		return RequestStatus(s), nil
	}
	return "", fmt.Errorf("unknown request status '%s'", s)
}

// requestTransitions is the closed, linear transition table for pickup
// requests. There is no cancellation edge; a delivered request is terminal.
var requestTransitions = map[RequestStatus]RequestStatus{
	RequestPending: RequestEnRoute,
	RequestEnRoute: RequestDelivered,
}

func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	next, ok := requestTransitions[s]
	return ok && next == target
}

// Terminal reports whether no further transition is possible.
func (s RequestStatus) Terminal() bool {
	_, ok := requestTransitions[s]
	return !ok
}
