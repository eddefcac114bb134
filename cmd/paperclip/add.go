package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kiltahuone/paperclip/internal/cli"
	"github.com/kiltahuone/paperclip/internal/model"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add financial entities",
	}

	cmd.AddCommand(addReceiptCmd())
	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(addReimbursementCmd())

	return cmd
}

func addReceiptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receipt",
		Short: "Add a receipt",
		RunE:  runAddReceipt,
	}

	cmd.Flags().String("store", "", "store name")
	cmd.Flags().Float64("total", 0, "total amount")
	cmd.Flags().String("date", "", "purchase date (YYYY-MM-DD)")
	cmd.Flags().String("currency", model.DefaultCurrency, "currency code")
	cmd.Flags().String("items", "", "serialized OCR item list (JSON)")
	cmd.Flags().String("created-by", "", "creator user id")
	_ = cmd.MarkFlagRequired("store")
	_ = cmd.MarkFlagRequired("total")

	return cmd
}

func runAddReceipt(cmd *cobra.Command, _ []string) error {
	store, _ := cmd.Flags().GetString("store")
	total, _ := cmd.Flags().GetFloat64("total")
	currency, _ := cmd.Flags().GetString("currency")
	items, _ := cmd.Flags().GetString("items")
	createdBy, _ := cmd.Flags().GetString("created-by")

	receipt := &model.Receipt{
		ID:          uuid.NewString(),
		StoreName:   store,
		TotalAmount: total,
		Currency:    currency,
		Items:       items,
		CreatedBy:   createdBy,
	}

	if cmd.Flags().Changed("date") {
		raw, _ := cmd.Flags().GetString("date")
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", raw, err)
		}
		receipt.PurchaseDate = date
	}

	ctx := cmd.Context()
	db, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.SaveReceipt(ctx, receipt); err != nil {
		return fmt.Errorf("failed to save receipt: %w", err)
	}

	fmt.Println(cli.SuccessStyle.Render("✓ Added receipt/" + receipt.ID))
	return nil
}

func addTransactionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transaction",
		Short: "Add a bank transaction",
		RunE:  runAddTransaction,
	}

	cmd.Flags().Float64("amount", 0, "signed amount (negative for expenses)")
	cmd.Flags().String("description", "", "transaction description")
	cmd.Flags().String("date", "", "transaction date (YYYY-MM-DD)")
	cmd.Flags().String("category", "", "budget category")
	cmd.Flags().String("account", "", "account id")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func runAddTransaction(cmd *cobra.Command, _ []string) error {
	amount, _ := cmd.Flags().GetFloat64("amount")
	description, _ := cmd.Flags().GetString("description")
	category, _ := cmd.Flags().GetString("category")
	account, _ := cmd.Flags().GetString("account")

	raw, _ := cmd.Flags().GetString("date")
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", raw, err)
	}

	txn := model.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: description,
		Category:    category,
		AccountID:   account,
		Amount:      amount,
	}

	ctx := cmd.Context()
	db, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.SaveTransactions(ctx, []model.Transaction{txn}); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	fmt.Println(cli.SuccessStyle.Render("✓ Added transaction/" + txn.ID))
	return nil
}

func addReimbursementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reimbursement",
		Short: "Add a reimbursement request",
		RunE:  runAddReimbursement,
	}

	cmd.Flags().Float64("amount", 0, "requested amount")
	cmd.Flags().String("description", "", "what the expense was for")
	cmd.Flags().String("created-by", "", "requesting member id")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func runAddReimbursement(cmd *cobra.Command, _ []string) error {
	amount, _ := cmd.Flags().GetFloat64("amount")
	description, _ := cmd.Flags().GetString("description")
	createdBy, _ := cmd.Flags().GetString("created-by")

	reimbursement := &model.Reimbursement{
		ID:          uuid.NewString(),
		Description: description,
		Amount:      amount,
		Status:      model.ReimbursementPending,
		CreatedBy:   createdBy,
	}

	ctx := cmd.Context()
	db, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.SaveReimbursement(ctx, reimbursement); err != nil {
		return fmt.Errorf("failed to save reimbursement: %w", err)
	}

	fmt.Println(cli.SuccessStyle.Render("✓ Added reimbursement/" + reimbursement.ID))
	return nil
}
