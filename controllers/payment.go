package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"nautika-backend/models"
	"nautika-backend/utils"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// snapAPI is the slice of the Midtrans Snap client the controller uses.
type snapAPI interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

type PaymentController struct {
	snap snapAPI
}

func NewPaymentController() *PaymentController {
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_ENV") == "production" {
		env = midtrans.Production
	}

	var client snap.Client
	client.New(os.Getenv("MIDTRANS_SERVER_KEY"), env)
	return &PaymentController{snap: &client}
}

type paymentRequest struct {
	Amount int    `json:"amount"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// ProcessPayment requests a Snap transaction token from Midtrans for a
// QRIS payment and hands the token and redirect URL back to the frontend.
func (pc *PaymentController) ProcessPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req paymentRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}

		if req.Amount <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid amount. It must be a positive number"})
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid name. It must be a non-empty string"})
			return
		}
		if !strings.Contains(req.Email, "@") {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid email format"})
			return
		}

		snapReq := &snap.Request{
			TransactionDetails: midtrans.TransactionDetails{
				OrderID:  fmt.Sprintf("order-%d", time.Now().UnixMilli()),
				GrossAmt: int64(req.Amount),
			},
			CustomerDetail: &midtrans.CustomerDetails{
				FName: req.Name,
				Email: req.Email,
			},
		}

		resp, snapErr := pc.snap.CreateTransaction(snapReq)
		if snapErr != nil {
			log.Println("Error creating Midtrans transaction:", snapErr.Error())
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{
				Message: "Failed to create transaction. Please try again later",
			})
			return
		}

		utils.ResponseJSON(w, map[string]string{
			"token":        resp.Token,
			"redirect_url": resp.RedirectURL,
		})
	}
}
