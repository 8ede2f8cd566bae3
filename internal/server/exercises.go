package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"labkit/internal/api"
	"labkit/internal/services"
	"labkit/internal/validation"
)

type (
	quizRequest struct {
		Answers services.Answers `json:"answers"`
	}

	calcRequest struct {
		A  string `json:"a"`
		B  string `json:"b"`
		Op string `json:"op"`
	}

	calcResponse struct {
		*services.Calculation
		History []string `json:"history"`
	}
)

type exerciseApi struct {
	session *api.Session
}

func registerExerciseAPI(g *echo.Group, session *api.Session) {
	ex := exerciseApi{session: session}

	g.GET("/quiz", ex.questions)
	g.POST("/quiz", ex.grade)
	g.POST("/calc", ex.calculate)
	g.POST("/register", ex.register)
	g.GET("/records", ex.records)
}

func (ex *exerciseApi) questions(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, ex.session.Quiz.Questions())
}

func (ex *exerciseApi) grade(ctx echo.Context) error {
	var data quizRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to quizRequest")
	}
	result, err := ex.session.Quiz.Grade(data.Answers)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, result)
}

func (ex *exerciseApi) calculate(ctx echo.Context) error {
	var data calcRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to calcRequest")
	}
	calc, err := ex.session.Calculator.Run(data.A, data.B, data.Op)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, calcResponse{Calculation: calc, History: ex.session.Calculator.History()})
}

func (ex *exerciseApi) register(ctx echo.Context) error {
	var data validation.RegistrationInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RegistrationInput")
	}
	result, err := ex.session.Registration.Submit(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, result)
}

func (ex *exerciseApi) records(ctx echo.Context) error {
	report, err := ex.session.Records.Report()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, report)
}
