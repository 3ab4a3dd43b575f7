/*
Package domain contains the core domain models for ledgermcp.

It defines the fundamental entities of the submission pipeline, such as
transaction descriptors, amounts, accounts, and the token issuance workflow
context. This package is kept pure and free of external dependencies like
I/O or transports, following Hexagonal Architecture principles.

# Key Entities

  - Transaction: A kind-tagged descriptor of one ledger-mutating operation.
  - Amount: A native (drops) or issued-currency value.
  - SubmissionResult: The finalized outcome of one submitted transaction.
  - WorkflowContext: The accumulating result of a token issuance run.
*/
package domain
