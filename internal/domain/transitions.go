package domain

// orderStatusWeight orders the forward-only fulfilment flow.
var orderStatusWeight = map[string]int{
	OrderStatusPending:      10,
	OrderStatusConfirmed:    20,
	OrderStatusInProduction: 30,
	OrderStatusShipped:      40,
	OrderStatusDelivered:    50,
	OrderStatusCancelled:    90,
}

func IsOrderStatus(s string) bool {
	_, ok := orderStatusWeight[s]
	return ok
}

// CanTransitionOrder reports whether an order may move from one status to
// another. Statuses only move forward; cancellation is possible until the
// order has shipped.
func CanTransitionOrder(from, to string) bool {
	fw, ok := orderStatusWeight[from]
	if !ok {
		return false
	}
	tw, ok := orderStatusWeight[to]
	if !ok || from == OrderStatusCancelled {
		return false
	}
	if to == OrderStatusCancelled {
		return fw < orderStatusWeight[OrderStatusShipped]
	}
	return tw > fw
}

var sampleTransitions = map[string][]string{
	SampleStatusRequested: {SampleStatusApproved, SampleStatusDeclined},
	SampleStatusApproved:  {SampleStatusShipped},
}

func IsSampleStatus(s string) bool {
	for _, v := range SampleStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func CanTransitionSample(from, to string) bool {
	for _, next := range sampleTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
