package handlers

import (
	userRepo "pawroute/database/repository/user"
	walkerRepo "pawroute/database/repository/walker"
)

// HandlerBundle groups all handlers plus the repositories the auth
// middleware needs, so route registration takes a single argument.
type HandlerBundle struct {
	User    *UserHandler
	Walker  *WalkerHandler
	Dog     *DogHandler
	Booking *BookingHandler
	Walk    *WalkHandler
	Admin   *AdminHandler

	UserRepo   userRepo.UserRepository
	WalkerRepo walkerRepo.WalkerRepository
}
