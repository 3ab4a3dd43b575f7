/*
Package ports defines the driven ports (interfaces) for ledgermcp.

These interfaces decouple the submission pipeline from external
implementations, allowing the core to work with different ledger
transports, faucets, and journal backends.

# Key Interfaces

  - Conn: A live session with one ledger network endpoint.
  - Faucet: Test-network account provisioning.
  - Journal: Optional persistence of workflow transaction records.
*/
package ports
