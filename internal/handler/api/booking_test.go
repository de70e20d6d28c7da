//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/handler/api"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"
	"rental-booking/tests/common/builder"
	"rental-booking/tests/common/httptest"
	"rental-booking/tests/common/testutil"
	commandsmock "rental-booking/tests/mock/commands"
	queriesmock "rental-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	userID       uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.Create)
	s.router.GET("/bookings", authMiddleware, s.handler.List)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.Get)
	s.router.PATCH("/bookings/:id/status", authMiddleware, s.handler.UpdateStatus)
	// no auth middleware: the handler must refuse on its own
	s.router.POST("/unguarded/bookings", s.handler.Create)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func createRequestBody(rentalID uuid.UUID) map[string]any {
	return map[string]any{
		"rentalId":       rentalID.String(),
		"checkInDate":    "2030-06-10",
		"checkOutDate":   "2030-06-15",
		"numberOfGuests": 2,
		"guestMessage":   "Arriving late",
	}
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"
	rentalID := uuid.New()
	reqBody := createRequestBody(rentalID)

	s.Run("success: returns 201 with the priced booking", func() {
		view := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.RentalID = rentalID
			b.GuestID = s.userID
		}).BuildView()

		msg := "Arriving late"
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), commands.CreateBookingInput{
			GuestID:        s.userID,
			RentalID:       rentalID,
			CheckInDate:    "2030-06-10",
			CheckOutDate:   "2030-06-15",
			NumberOfGuests: 2,
			GuestMessage:   &msg,
		}).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("PENDING", body.Status)
		s.Equal("2030-06-10", body.CheckInDate)
		s.Equal(5, body.Price.Nights)
		s.Equal(view.TotalPrice, body.Price.Total.Minor)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/bookings/" + view.ID.String()})
	})

	s.Run("blank guest message is dropped", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CreateBookingInput) (*queries.BookingView, error) {
				s.Nil(in.GuestMessage)
				return builder.NewBookingBuilder().BuildView(), nil
			}).Times(1)

		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("guestMessage", "   "))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseBooking{
			{name: "missing field: rentalId", mutate: testutil.Field("rentalId", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: checkInDate", mutate: testutil.Field("checkInDate", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: checkOutDate", mutate: testutil.Field("checkOutDate", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: numberOfGuests", mutate: testutil.Field("numberOfGuests", nil), expectCode: http.StatusBadRequest},
			{name: "malformed rentalId", mutate: testutil.Field("rentalId", "not-a-uuid"), expectCode: http.StatusBadRequest},
			{name: "message length OK (1000 chars)", mutate: testutil.Field("guestMessage", strings.Repeat("a", 1000)), expectCode: http.StatusCreated},
			{name: "message length invalid (1001 chars)", mutate: testutil.Field("guestMessage", strings.Repeat("a", 1001)), expectCode: http.StatusBadRequest},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				if tc.expectCode == http.StatusCreated {
					s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
						Return(builder.NewBookingBuilder().BuildView(), nil).Times(1)
				}
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				if tc.expectCode == http.StatusCreated {
					httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
				} else {
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
				}
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 401 when no identity reached the handler", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/unguarded/bookings", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedReason string
			expectedMsg    string
		}{
			{"rental not found", booking.ErrRentalNotFound, http.StatusNotFound, "RENTAL_NOT_FOUND", "Rental not found"},
			{"self booking", booking.ErrSelfBooking, http.StatusBadRequest, "SELF_BOOKING", "You cannot book your own rental"},
			{"too many guests", booking.ErrTooManyGuests.Withf("Maximum guests allowed is %d", 4), http.StatusBadRequest, "TOO_MANY_GUESTS", "Maximum guests allowed is 4"},
			{"minimum stay", booking.ErrMinimumStay, http.StatusBadRequest, "MINIMUM_STAY", "Booking must be at least 1 night"},
			{"dates unavailable", booking.ErrDatesUnavailable, http.StatusConflict, "DATES_UNAVAILABLE", "Rental is not available for these dates"},
			{"unexpected failure", errors.New("connection reset"), http.StatusInternalServerError, "", "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				env := httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				s.Equal(tc.expectedReason, env.Error.Reason)
				s.NotContains(rec.Body.String(), "connection reset")
			})
		}
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestList() {
	url := "/bookings"

	item := &queries.BookingListItem{
		ID:          uuid.New(),
		RentalID:    uuid.New(),
		RentalTitle: "Harbour loft",
		GuestID:     s.userID,
		HostID:      uuid.New(),
		CheckIn:     builder.Date(2030, 6, 10),
		CheckOut:    builder.Date(2030, 6, 12),
		GuestCount:  2,
		Status:      "PENDING",
		TotalMinor:  25000,
	}

	s.Run("success: defaults to the guest side", func() {
		s.mockQueries.EXPECT().ListBookingsForUser(gomock.Any(), s.userID, queries.ListAsGuest).
			Return([]*queries.BookingListItem{item}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body []resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal(item.ID, body[0].ID)
		s.Equal("Harbour loft", body[0].RentalTitle)
		s.Equal("2030-06-10", body[0].CheckInDate)
		s.Equal("2030-06-12", body[0].CheckOutDate)
		s.Equal(2, body[0].NumberOfGuests)
		s.Equal(resdto.MoneyResponse{Minor: 25000, Amount: "250.00"}, body[0].TotalPrice)
	})

	s.Run("success: host side, case-insensitive", func() {
		s.mockQueries.EXPECT().ListBookingsForUser(gomock.Any(), s.userID, queries.ListAsHost).
			Return([]*queries.BookingListItem{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?role=host", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq("[]", rec.Body.String())
	})

	s.Run("error: 400 for an unknown role", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?role=ADMIN", nil, "bearer-token")
		httptest.AssertErrorReason(s.T(), rec, http.StatusBadRequest, "INVALID_LIST_ROLE")
	})

	s.Run("error: 500 when the store fails", func() {
		s.mockQueries.EXPECT().ListBookingsForUser(gomock.Any(), s.userID, queries.ListAsGuest).
			Return(nil, errors.New("db down")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	view := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.ID = bookingID
		b.GuestID = s.userID
	}).BuildView()

	s.Run("success: returns 200 with the booking", func() {
		s.mockQueries.EXPECT().GetBookingByID(gomock.Any(), bookingID, s.userID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(bookingID, body.ID)
		s.Equal(view.Version, body.Version)
		s.Nil(body.CancelledAt)
	})

	s.Run("error: 400 for an invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/nope", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking id")
	})

	s.Run("error: maps query errors", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
		}{
			{"not found", booking.ErrBookingNotFound, http.StatusNotFound},
			{"not a party", booking.ErrAccessDenied, http.StatusForbidden},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().GetBookingByID(gomock.Any(), bookingID, s.userID).Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestUpdateStatus
// ================================================================================

func (s *BookingHandlerTestSuite) TestUpdateStatus() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/status"

	s.Run("success: status is normalised before the transition", func() {
		view := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed).BuildView()
		s.mockCommands.EXPECT().UpdateBookingStatus(gomock.Any(), commands.UpdateBookingStatusInput{
			BookingID: bookingID,
			ActorID:   s.userID,
			Status:    "CONFIRMED",
		}).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": " confirmed "}, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("CONFIRMED", body.Status)
	})

	s.Run("error: 400 when status is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 400 for an invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/123/status", map[string]any{"status": "CONFIRMED"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking id")
	})

	s.Run("error: maps transition errors", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "edge not in lifecycle",
				err:            booking.ErrInvalidTransition.Withf("Cannot update booking from %s to %s", booking.StatusDeclined, booking.StatusConfirmed),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Cannot update booking from DECLINED to CONFIRMED",
			},
			{name: "stranger", err: booking.ErrAccessDenied, expectedStatus: http.StatusForbidden, expectedMsg: "Access denied"},
			{name: "missing booking", err: booking.ErrBookingNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "Booking not found"},
			{name: "lost every retry", err: booking.ErrConcurrentUpdate, expectedStatus: http.StatusConflict, expectedMsg: "modified concurrently"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().UpdateBookingStatus(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "CONFIRMED"}, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
