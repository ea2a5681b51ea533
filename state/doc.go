// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state provides the storage view the builtin subsystems operate on.
//
// Every slot is addressed by (subsystem address, 32 bytes key) and holds an rlp encoded value.
// Changes are journaled in a stackedmap so a transaction can be reverted to a checkpoint,
// and a Stage writes the surviving changes into the kv store in one atomic batch.
package state
