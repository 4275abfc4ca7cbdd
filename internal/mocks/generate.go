package mocks

//go:generate mockgen -destination=board.go -package=mocks -mock_names=Repository=MockBoardRepository github.com/alanyang/assignit/internal/port/board Repository
//go:generate mockgen -destination=member.go -package=mocks -mock_names=Repository=MockMemberRepository github.com/alanyang/assignit/internal/port/member Repository
//go:generate mockgen -destination=story.go -package=mocks -mock_names=Repository=MockStoryRepository github.com/alanyang/assignit/internal/port/story Repository
//go:generate mockgen -destination=eventbus.go -package=mocks github.com/alanyang/assignit/internal/port/eventbus EventBus,Subscription
//go:generate mockgen -destination=locker.go -package=mocks github.com/alanyang/assignit/internal/port/locker AdvisoryLocker
//go:generate mockgen -destination=idempotency.go -package=mocks -mock_names=Store=MockIdempotencyStore github.com/alanyang/assignit/internal/port/idempotency Store
