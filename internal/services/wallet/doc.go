/*
Package wallet is the transaction engine: the only code that changes a
wallet balance.

Every operation moves through the same stages and only the terminal one is
visible to the caller:

	Received -> Validated -> LimitChecked -> Committed | Rejected

Validation parses the amount and type, the limit policy gates the amount,
and the ledger repository applies the balance change and appends the
transaction record in one unit of work. After a commit the cached balance is
invalidated and metrics are recorded. Transfers and top-ups additionally
hand a settlement task to the settlement dispatcher; the bank leg runs in
the background and the ledger entry never depends on it.

Usage:

	svc := wallet.NewService(ledger, banks, policy, balances, dispatcher, wallet.WalletConfig{}, metrics, log)

	res, err := svc.RecordTransaction(ctx, userID, wallet.RecordRequest{
		Amount: "400",
		Type:   "DEBIT",
	})

	out, err := svc.Transfer(ctx, userID, "GTB", "250")

Error Handling:

Failures are *errors.DomainError values from internal/errors and should be
matched with errors.Is:
  - ErrInvalidInput: malformed amount or type
  - ErrLimitExceeded: a limit rule failed; Reason names the rule
  - ErrWalletNotFound, ErrBankNotFound, ErrBankAccountNotLinked
  - ErrInsufficientFunds, ErrTransferLimitExceeded
  - ErrInternal: anything unexpected; the cause is logged, not returned
*/
package wallet
