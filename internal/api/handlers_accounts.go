package api

import (
	"errors"

	"github.com/dorazhang07/ladle/internal/api/metrics"
	"github.com/dorazhang07/ladle/internal/services"
	"github.com/gofiber/fiber/v2"
)

type createAccountPayload struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (handler *Handler) CreateAccount(c *fiber.Ctx) error {
	payload := createAccountPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if fields := validateStruct(payload); fields != nil {
		return apiFieldErrors(c, fields)
	}

	user, err := handler.authService.Register(services.RegisterInput{
		Email:     payload.Email,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return apiFieldErrors(c, map[string]string{"email": "email is already registered"})
		case errors.Is(err, services.ErrInvalidEmail):
			return apiFieldErrors(c, map[string]string{"email": "email must be a valid email"})
		case errors.Is(err, services.ErrPasswordTooShort):
			return apiFieldErrors(c, map[string]string{"password": "password is too short"})
		}
		handler.log.Error().Err(err).Msg("create account")
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	return c.Status(fiber.StatusCreated).JSON(newUserResponse(user))
}

type createTokenPayload struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (handler *Handler) CreateToken(c *fiber.Ctx) error {
	payload := createTokenPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if fields := validateStruct(payload); fields != nil {
		return apiFieldErrors(c, fields)
	}

	token, err := handler.authService.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return apiError(c, fiber.StatusBadRequest, "unable to authenticate with provided credentials")
		}
		handler.log.Error().Err(err).Msg("create token")
		return apiError(c, fiber.StatusInternalServerError, "failed to create token")
	}

	metrics.TokensIssuedTotal.Inc()
	return c.JSON(fiber.Map{"token": token.Key})
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(newUserResponse(user))
}

// updateProfilePayload uses pointers so PATCH can distinguish an omitted
// field from an explicit empty value. Email is immutable here and absent on
// purpose.
type updateProfilePayload struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password"`
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := updateProfilePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	updated, err := handler.authService.UpdateProfile(user.ID, services.ProfileUpdate{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Password:  payload.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrPasswordTooShort) {
			return apiFieldErrors(c, map[string]string{"password": "password is too short"})
		}
		handler.log.Error().Err(err).Msg("update profile")
		return apiError(c, fiber.StatusInternalServerError, "failed to update profile")
	}

	return c.JSON(newUserResponse(updated))
}
