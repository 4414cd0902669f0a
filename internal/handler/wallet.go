package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ibcplay/ibcplay/internal/domain"
	"github.com/ibcplay/ibcplay/internal/ledger"
	"github.com/ibcplay/ibcplay/internal/repository"
)

// AmountRequest represents a deposit or withdrawal request body. Amounts are
// decoded as decimals; positivity is enforced by the ledger.
type AmountRequest struct {
	Currency string          `json:"currency" validate:"required,currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// ConvertRequest represents a currency conversion request body
type ConvertRequest struct {
	FromCurrency string          `json:"from_currency" validate:"required,currency"`
	ToCurrency   string          `json:"to_currency" validate:"required,currency"`
	Amount       decimal.Decimal `json:"amount"`
}

// HandleDeposit credits the authenticated user's wallet
// @Summary Deposit funds
// @Tags wallet
// @Accept json
// @Produce json
// @Success 201 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/wallet/deposit [post]
func HandleDeposit(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := RequireOwnerID(w, r)
		if !ok {
			return
		}

		var req AmountRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Deposit"); err != nil {
			return
		}

		tx, err := svc.Deposit(r.Context(), ownerID, req.Currency, req.Amount)
		if err != nil {
			respondServiceError(w, r, "Deposit", err)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgDepositRecorded, Data: tx})
	}
}

// HandleWithdraw debits the authenticated user's available balance
// @Summary Withdraw funds
// @Tags wallet
// @Accept json
// @Produce json
// @Success 201 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/wallet/withdraw [post]
func HandleWithdraw(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := RequireOwnerID(w, r)
		if !ok {
			return
		}

		var req AmountRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Withdraw"); err != nil {
			return
		}

		tx, err := svc.Withdraw(r.Context(), ownerID, req.Currency, req.Amount)
		if err != nil {
			respondServiceError(w, r, "Withdraw", err)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgWithdrawalRecorded, Data: tx})
	}
}

// HandleConvert exchanges between two of the user's wallets at the current
// rate
// @Summary Convert between currencies
// @Tags wallet
// @Accept json
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/wallet/convert [post]
func HandleConvert(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := RequireOwnerID(w, r)
		if !ok {
			return
		}

		var req ConvertRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Convert"); err != nil {
			return
		}

		conversion, err := svc.Convert(r.Context(), ownerID, req.FromCurrency, req.ToCurrency, req.Amount)
		if err != nil {
			respondServiceError(w, r, "Convert", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Message: MsgConversionDone, Data: conversion})
	}
}

// BalancesResponse lists the user's wallets plus their combined USD value
type BalancesResponse struct {
	Wallets  []domain.WalletBalance `json:"wallets"`
	TotalUSD decimal.Decimal        `json:"total_usd"`
}

// HandleGetBalances lists the user's wallets with USD valuations
// @Summary Wallet balances
// @Tags wallet
// @Produce json
// @Success 200 {object} DataResponse
// @Router /api/v1/wallet/balances [get]
func HandleGetBalances(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := RequireOwnerID(w, r)
		if !ok {
			return
		}

		balances, err := svc.Wallets(r.Context(), ownerID)
		if err != nil {
			respondServiceError(w, r, "Get balances", err)
			return
		}

		total := decimal.Zero
		for _, b := range balances {
			total = total.Add(b.USDValue)
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: BalancesResponse{Wallets: balances, TotalUSD: total}})
	}
}

// HandleListTransactions returns the user's ledger history, newest first.
// Optional kind and currency query parameters narrow the listing.
// @Summary Transaction history
// @Tags wallet
// @Produce json
// @Success 200 {object} DataResponse
// @Router /api/v1/transactions [get]
func HandleListTransactions(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := RequireOwnerID(w, r)
		if !ok {
			return
		}

		limit, offset, ok := ParsePagination(r, w)
		if !ok {
			return
		}

		filter := repository.TransactionFilter{OwnerID: ownerID, Limit: limit, Offset: offset}
		if raw := r.URL.Query().Get("kind"); raw != "" {
			kind := domain.TransactionKind(raw)
			filter.Kind = &kind
		}
		if raw := r.URL.Query().Get("currency"); raw != "" {
			filter.Currency = &raw
		}

		transactions, err := svc.Transactions(r.Context(), filter)
		if err != nil {
			respondServiceError(w, r, "List transactions", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: transactions})
	}
}
