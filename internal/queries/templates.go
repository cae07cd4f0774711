package queries

// SQL templates over SNOWFLAKE.ACCOUNT_USAGE, one per dashboard metric.
// Every template takes the lookback window in days as %[1]d and the row cap
// as its last indexed verb. Parameters are validated integers (and a
// float rate for cost templates) formatted into the text, never user
// strings.

const warehouseMetricsSQL = `
WITH warehouse_usage AS (
    SELECT
        WAREHOUSE_NAME,
        SUM(CREDITS_USED) AS TOTAL_CREDITS,
        AVG(CREDITS_USED) AS AVG_DAILY_CREDITS,
        MAX(CREDITS_USED) AS MAX_DAILY_CREDITS,
        COUNT(DISTINCT DATE_TRUNC('DAY', START_TIME)) AS ACTIVE_DAYS
    FROM SNOWFLAKE.ACCOUNT_USAGE.WAREHOUSE_METERING_HISTORY
    WHERE START_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
    GROUP BY WAREHOUSE_NAME
),
warehouse_load AS (
    SELECT
        WAREHOUSE_NAME,
        AVG(AVG_RUNNING) AS AVG_RUNNING_QUERIES,
        AVG(AVG_QUEUED_LOAD) AS AVG_QUEUED_LOAD,
        AVG(AVG_QUEUED_PROVISIONING) AS AVG_QUEUED_PROVISIONING,
        AVG(AVG_BLOCKED) AS AVG_BLOCKED_QUERIES
    FROM SNOWFLAKE.ACCOUNT_USAGE.WAREHOUSE_LOAD_HISTORY
    WHERE START_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
    GROUP BY WAREHOUSE_NAME
)
SELECT
    u.*,
    l.AVG_RUNNING_QUERIES,
    l.AVG_QUEUED_LOAD,
    l.AVG_QUEUED_PROVISIONING,
    l.AVG_BLOCKED_QUERIES,
    (u.TOTAL_CREDITS / NULLIF(u.ACTIVE_DAYS, 0)) AS AVG_CREDITS_PER_ACTIVE_DAY
FROM warehouse_usage u
LEFT JOIN warehouse_load l ON u.WAREHOUSE_NAME = l.WAREHOUSE_NAME
ORDER BY TOTAL_CREDITS DESC
LIMIT %[2]d`

const warehouseRecommendationsSQL = `
WITH warehouse_stats AS (
    SELECT
        w.WAREHOUSE_NAME,
        w.WAREHOUSE_SIZE,
        COUNT(DISTINCT q.QUERY_ID) AS QUERY_COUNT,
        AVG(q.TOTAL_ELAPSED_TIME)/1000 AS AVG_QUERY_TIME_SEC,
        AVG(q.QUEUED_OVERLOAD_TIME)/1000 AS AVG_QUEUE_TIME_SEC,
        SUM(m.CREDITS_USED) AS TOTAL_CREDITS,
        AVG(l.AVG_RUNNING) AS AVG_CONCURRENT_QUERIES
    FROM SNOWFLAKE.ACCOUNT_USAGE.WAREHOUSES w
    LEFT JOIN SNOWFLAKE.ACCOUNT_USAGE.QUERY_HISTORY q
        ON w.WAREHOUSE_NAME = q.WAREHOUSE_NAME
        AND q.START_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
    LEFT JOIN SNOWFLAKE.ACCOUNT_USAGE.WAREHOUSE_METERING_HISTORY m
        ON w.WAREHOUSE_NAME = m.WAREHOUSE_NAME
        AND m.START_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
    LEFT JOIN SNOWFLAKE.ACCOUNT_USAGE.WAREHOUSE_LOAD_HISTORY l
        ON w.WAREHOUSE_NAME = l.WAREHOUSE_NAME
        AND l.START_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
    WHERE w.DELETED IS NULL
    GROUP BY w.WAREHOUSE_NAME, w.WAREHOUSE_SIZE
)
SELECT
    *,
    CASE
        WHEN AVG_QUEUE_TIME_SEC > 5 THEN 'UPSIZE'
        WHEN AVG_CONCURRENT_QUERIES < 1 AND WAREHOUSE_SIZE IN ('LARGE', 'X-LARGE', '2X-LARGE', '3X-LARGE', '4X-LARGE') THEN 'DOWNSIZE'
        WHEN QUERY_COUNT = 0 THEN 'SUSPEND_OR_DROP'
        ELSE 'OPTIMAL'
    END AS RECOMMENDATION,
    CASE
        WHEN AVG_QUEUE_TIME_SEC > 5 THEN 'High queue times detected - consider increasing warehouse size'
        WHEN AVG_CONCURRENT_QUERIES < 1 AND WAREHOUSE_SIZE IN ('LARGE', 'X-LARGE', '2X-LARGE', '3X-LARGE', '4X-LARGE')
            THEN 'Low utilization - consider reducing warehouse size'
        WHEN QUERY_COUNT = 0 THEN 'No queries executed - consider suspending or dropping'
        ELSE 'Warehouse is optimally sized'
    END AS REASON
FROM warehouse_stats
ORDER BY TOTAL_CREDITS DESC
LIMIT %[2]d`

const storageMetricsSQL = `
WITH latest_storage AS (
    SELECT
        DATABASE_NAME,
        SUM(AVERAGE_DATABASE_BYTES) AS DATABASE_BYTES,
        SUM(AVERAGE_FAILSAFE_BYTES) AS FAILSAFE_BYTES,
        SUM(COALESCE(AVERAGE_HYBRID_TABLE_STORAGE_BYTES, 0)) AS HYBRID_TABLE_BYTES,
        MAX(USAGE_DATE) AS LAST_MEASURED
    FROM SNOWFLAKE.ACCOUNT_USAGE.DATABASE_STORAGE_USAGE_HISTORY
    WHERE USAGE_DATE >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
    GROUP BY DATABASE_NAME
),
stage_storage AS (
    SELECT
        COALESCE(SUM(AVERAGE_STAGE_BYTES), 0) AS TOTAL_STAGE_BYTES
    FROM SNOWFLAKE.ACCOUNT_USAGE.STAGE_STORAGE_USAGE_HISTORY
    WHERE USAGE_DATE >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
)
SELECT
    l.*,
    s.TOTAL_STAGE_BYTES,
    (l.DATABASE_BYTES + l.FAILSAFE_BYTES + l.HYBRID_TABLE_BYTES) AS TOTAL_BYTES
FROM latest_storage l
CROSS JOIN stage_storage s
ORDER BY TOTAL_BYTES DESC
LIMIT %[2]d`

const tableStorageInsightsSQL = `
WITH table_metrics AS (
    SELECT
        TABLE_CATALOG AS DATABASE_NAME,
        TABLE_SCHEMA AS SCHEMA_NAME,
        TABLE_NAME,
        ACTIVE_BYTES,
        TIME_TRAVEL_BYTES,
        FAILSAFE_BYTES,
        RETAINED_FOR_CLONE_BYTES,
        (ACTIVE_BYTES + TIME_TRAVEL_BYTES + FAILSAFE_BYTES + RETAINED_FOR_CLONE_BYTES) AS TOTAL_BYTES,
        IS_TRANSIENT,
        DELETED
    FROM SNOWFLAKE.ACCOUNT_USAGE.TABLE_STORAGE_METRICS
),
unused_tables AS (
    SELECT
        t.DATABASE_NAME,
        t.SCHEMA_NAME,
        t.TABLE_NAME,
        t.TOTAL_BYTES,
        'No queries in 90 days' AS ISSUE
    FROM table_metrics t
    LEFT JOIN SNOWFLAKE.ACCOUNT_USAGE.ACCESS_HISTORY a
        ON CONTAINS(a.BASE_OBJECTS_ACCESSED[0]:objectName::STRING, t.TABLE_NAME)
        AND a.QUERY_START_TIME >= DATEADD(DAY, -90, CURRENT_DATE())
    WHERE a.QUERY_ID IS NULL
        AND t.DELETED = FALSE
        AND t.TOTAL_BYTES > 1073741824
),
high_overhead_tables AS (
    SELECT
        DATABASE_NAME,
        SCHEMA_NAME,
        TABLE_NAME,
        TOTAL_BYTES,
        'High time travel/failsafe overhead' AS ISSUE
    FROM table_metrics
    WHERE (TIME_TRAVEL_BYTES + FAILSAFE_BYTES) > ACTIVE_BYTES * 0.5
        AND DELETED = FALSE
        AND IS_TRANSIENT = 'NO'
)
SELECT * FROM unused_tables
UNION ALL
SELECT * FROM high_overhead_tables
ORDER BY TOTAL_BYTES DESC
LIMIT %[1]d`

const queryPerformanceSQL = `
WITH query_metrics AS (
    SELECT
        QUERY_ID,
        USER_NAME,
        WAREHOUSE_NAME,
        TOTAL_ELAPSED_TIME/1000 AS ELAPSED_SEC,
        COMPILATION_TIME/1000 AS COMPILATION_SEC,
        QUEUED_OVERLOAD_TIME/1000 AS QUEUED_SEC,
        BYTES_SCANNED,
        BYTES_SPILLED_TO_LOCAL_STORAGE,
        BYTES_SPILLED_TO_REMOTE_STORAGE,
        EXECUTION_STATUS
    FROM SNOWFLAKE.ACCOUNT_USAGE.QUERY_HISTORY
    WHERE START_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
),
problematic_queries AS (
    SELECT
        *,
        CASE
            WHEN ELAPSED_SEC > 300 THEN 'Long running (>5 min)'
            WHEN QUEUED_SEC > 60 THEN 'High queue time'
            WHEN BYTES_SPILLED_TO_REMOTE_STORAGE > 0 THEN 'Remote spilling detected'
            WHEN BYTES_SPILLED_TO_LOCAL_STORAGE > 1073741824 THEN 'Excessive local spilling'
            WHEN COMPILATION_SEC / NULLIF(ELAPSED_SEC, 0) > 0.3 THEN 'High compilation overhead'
            WHEN EXECUTION_STATUS != 'SUCCESS' THEN 'Query failed'
            WHEN BYTES_SCANNED > 10737418240 THEN 'Excessive data scan (>10GB)'
            ELSE 'Other'
        END AS ISSUE_TYPE
    FROM query_metrics
    WHERE ELAPSED_SEC > 60
        OR QUEUED_SEC > 10
        OR BYTES_SPILLED_TO_REMOTE_STORAGE > 0
        OR EXECUTION_STATUS != 'SUCCESS'
)
SELECT
    ISSUE_TYPE,
    COUNT(*) AS QUERY_COUNT,
    AVG(ELAPSED_SEC) AS AVG_ELAPSED_SEC,
    SUM(BYTES_SCANNED) AS TOTAL_BYTES_SCANNED,
    LISTAGG(DISTINCT WAREHOUSE_NAME, ', ') WITHIN GROUP (ORDER BY WAREHOUSE_NAME) AS WAREHOUSES
FROM problematic_queries
GROUP BY ISSUE_TYPE
ORDER BY QUERY_COUNT DESC
LIMIT %[2]d`

const pruningEfficiencySQL = `
SELECT
    TABLE_NAME,
    DATABASE_NAME,
    SCHEMA_NAME,
    COUNT(*) AS SCAN_COUNT,
    SUM(PARTITIONS_SCANNED) AS TOTAL_PARTITIONS_SCANNED,
    SUM(PARTITIONS_PRUNED) AS TOTAL_PARTITIONS_PRUNED,
    AVG(PARTITIONS_SCANNED::FLOAT / NULLIF(PARTITIONS_TOTAL, 0)) AS AVG_SCAN_RATIO,
    CASE
        WHEN AVG_SCAN_RATIO > 0.5 THEN 'Poor'
        WHEN AVG_SCAN_RATIO > 0.2 THEN 'Moderate'
        ELSE 'Good'
    END AS PRUNING_QUALITY
FROM SNOWFLAKE.ACCOUNT_USAGE.TABLE_QUERY_PRUNING_HISTORY
WHERE START_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
GROUP BY TABLE_NAME, DATABASE_NAME, SCHEMA_NAME
HAVING SCAN_COUNT > 10
ORDER BY AVG_SCAN_RATIO DESC
LIMIT %[2]d`

const cortexAnalystUsageSQL = `
SELECT
    DATE_TRUNC('DAY', START_TIME) AS USAGE_DATE,
    USER_NAME,
    SEMANTIC_MODEL_NAME,
    COUNT(*) AS REQUEST_COUNT,
    AVG(CREDITS_USED) AS AVG_CREDITS,
    SUM(CREDITS_USED) AS TOTAL_CREDITS
FROM SNOWFLAKE.ACCOUNT_USAGE.CORTEX_ANALYST_USAGE_HISTORY
WHERE START_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
GROUP BY USAGE_DATE, USER_NAME, SEMANTIC_MODEL_NAME
ORDER BY USAGE_DATE DESC
LIMIT %[2]d`

const cortexSearchUsageSQL = `
SELECT
    USAGE_DATE,
    SERVICE_NAME,
    SUM(CREDITS_USED) AS TOTAL_CREDITS,
    SUM(NUM_QUERIES) AS TOTAL_QUERIES
FROM SNOWFLAKE.ACCOUNT_USAGE.CORTEX_SEARCH_DAILY_USAGE_HISTORY
WHERE USAGE_DATE >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
GROUP BY USAGE_DATE, SERVICE_NAME
ORDER BY USAGE_DATE DESC
LIMIT %[2]d`

const cortexFinetuningUsageSQL = `
SELECT
    DATE_TRUNC('DAY', START_TIME) AS USAGE_DATE,
    USER_NAME,
    MODEL_NAME,
    SUM(CREDITS_USED) AS TOTAL_CREDITS,
    COUNT(*) AS JOB_COUNT
FROM SNOWFLAKE.ACCOUNT_USAGE.CORTEX_FINETUNING_HISTORY
WHERE START_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
GROUP BY USAGE_DATE, USER_NAME, MODEL_NAME
ORDER BY USAGE_DATE DESC
LIMIT %[2]d`

const taskHistorySQL = `
WITH task_runs AS (
    SELECT
        NAME AS TASK_NAME,
        DATABASE_NAME,
        SCHEMA_NAME,
        STATE,
        SCHEDULED_TIME,
        COMPLETED_TIME,
        DATEDIFF('SECOND', SCHEDULED_TIME, COMPLETED_TIME) AS DURATION_SEC
    FROM SNOWFLAKE.ACCOUNT_USAGE.TASK_HISTORY
    WHERE SCHEDULED_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
)
SELECT
    TASK_NAME,
    DATABASE_NAME,
    SCHEMA_NAME,
    COUNT(*) AS TOTAL_RUNS,
    SUM(CASE WHEN STATE = 'SUCCEEDED' THEN 1 ELSE 0 END) AS SUCCESSFUL_RUNS,
    SUM(CASE WHEN STATE = 'FAILED' THEN 1 ELSE 0 END) AS FAILED_RUNS,
    AVG(DURATION_SEC) AS AVG_DURATION_SEC,
    MAX(DURATION_SEC) AS MAX_DURATION_SEC,
    MAX(COMPLETED_TIME) AS LAST_RUN
FROM task_runs
GROUP BY TASK_NAME, DATABASE_NAME, SCHEMA_NAME
ORDER BY FAILED_RUNS DESC, TOTAL_RUNS DESC
LIMIT %[2]d`

const pipeUsageSQL = `
SELECT
    PIPE_NAME,
    SUM(FILES_INSERTED) AS TOTAL_FILES,
    SUM(BYTES_INSERTED) AS TOTAL_BYTES,
    SUM(CREDITS_USED) AS TOTAL_CREDITS,
    AVG(BYTES_INSERTED / NULLIF(FILES_INSERTED, 0)) AS AVG_FILE_SIZE
FROM SNOWFLAKE.ACCOUNT_USAGE.PIPE_USAGE_HISTORY
WHERE START_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
GROUP BY PIPE_NAME
ORDER BY TOTAL_BYTES DESC
LIMIT %[2]d`

const snowpipeStreamingSQL = `
SELECT
    CHANNEL_NAME,
    TABLE_NAME,
    SUM(ROWS_INSERTED) AS TOTAL_ROWS,
    SUM(BYTES_INSERTED) AS TOTAL_BYTES,
    AVG(INSERT_LATENCY_MS) AS AVG_LATENCY_MS
FROM SNOWFLAKE.ACCOUNT_USAGE.SNOWPIPE_STREAMING_CHANNEL_HISTORY
WHERE START_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
GROUP BY CHANNEL_NAME, TABLE_NAME
ORDER BY TOTAL_BYTES DESC
LIMIT %[2]d`

const dynamicTableRefreshSQL = `
SELECT
    NAME AS TABLE_NAME,
    DATABASE_NAME,
    SCHEMA_NAME,
    STATE,
    REFRESH_START_TIME,
    REFRESH_END_TIME,
    DATEDIFF('SECOND', REFRESH_START_TIME, REFRESH_END_TIME) AS REFRESH_DURATION_SEC,
    DATA_TIMESTAMP,
    CREDITS_USED
FROM SNOWFLAKE.ACCOUNT_USAGE.DYNAMIC_TABLE_REFRESH_HISTORY
WHERE REFRESH_START_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
ORDER BY REFRESH_START_TIME DESC
LIMIT %[2]d`

const accessPatternsSQL = `
WITH access_summary AS (
    SELECT
        USER_NAME,
        BASE_OBJECTS_ACCESSED,
        QUERY_START_TIME,
        QUERY_ID
    FROM SNOWFLAKE.ACCOUNT_USAGE.ACCESS_HISTORY
    WHERE QUERY_START_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
)
SELECT
    USER_NAME,
    COUNT(DISTINCT QUERY_ID) AS ACCESS_COUNT,
    COUNT(DISTINCT QUERY_START_TIME::DATE) AS ACTIVE_DAYS,
    APPROX_COUNT_DISTINCT(VALUE:objectName::STRING) AS UNIQUE_OBJECTS_ACCESSED
FROM access_summary,
    LATERAL FLATTEN(input => BASE_OBJECTS_ACCESSED)
GROUP BY USER_NAME
ORDER BY ACCESS_COUNT DESC
LIMIT %[2]d`

const loginHistorySQL = `
SELECT
    USER_NAME,
    CLIENT_IP,
    REPORTED_CLIENT_TYPE,
    FIRST_AUTHENTICATION_FACTOR,
    IS_SUCCESS,
    ERROR_CODE,
    ERROR_MESSAGE,
    EVENT_TIMESTAMP
FROM SNOWFLAKE.ACCOUNT_USAGE.LOGIN_HISTORY
WHERE EVENT_TIMESTAMP >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
ORDER BY EVENT_TIMESTAMP DESC
LIMIT %[2]d`

const costAttributionSQL = `
WITH compute_costs AS (
    SELECT
        'Warehouse' AS COST_TYPE,
        WAREHOUSE_NAME AS RESOURCE_NAME,
        SUM(CREDITS_USED) AS CREDITS,
        SUM(CREDITS_USED) * %[2]f AS ESTIMATED_COST
    FROM SNOWFLAKE.ACCOUNT_USAGE.WAREHOUSE_METERING_HISTORY
    WHERE START_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
    GROUP BY WAREHOUSE_NAME
),
serverless_costs AS (
    SELECT
        'Serverless' AS COST_TYPE,
        SERVICE_TYPE AS RESOURCE_NAME,
        SUM(CREDITS_USED) AS CREDITS,
        SUM(CREDITS_USED) * %[2]f AS ESTIMATED_COST
    FROM SNOWFLAKE.ACCOUNT_USAGE.METERING_HISTORY
    WHERE START_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
        AND SERVICE_TYPE != 'WAREHOUSE_METERING'
    GROUP BY SERVICE_TYPE
)
SELECT * FROM compute_costs
UNION ALL
SELECT * FROM serverless_costs
ORDER BY ESTIMATED_COST DESC
LIMIT %[3]d`

const dailyCreditsSQL = `
SELECT
    DATE_TRUNC('DAY', START_TIME) AS COST_DATE,
    SUM(CREDITS_USED) AS DAILY_CREDITS
FROM SNOWFLAKE.ACCOUNT_USAGE.METERING_HISTORY
WHERE START_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
GROUP BY COST_DATE
ORDER BY COST_DATE
LIMIT %[2]d`

const queryVolumeSQL = `
SELECT
    DATE_TRUNC('DAY', START_TIME) AS QUERY_DATE,
    COUNT(*) AS QUERY_COUNT
FROM SNOWFLAKE.ACCOUNT_USAGE.QUERY_HISTORY
WHERE START_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
GROUP BY QUERY_DATE
ORDER BY QUERY_DATE
LIMIT %[2]d`

const tableFreshnessSQL = `
WITH table_last_modified AS (
    SELECT
        TABLE_CATALOG AS DATABASE_NAME,
        TABLE_SCHEMA AS SCHEMA_NAME,
        TABLE_NAME,
        LAST_ALTERED,
        ROW_COUNT,
        BYTES,
        DATEDIFF('HOUR', LAST_ALTERED, CURRENT_TIMESTAMP()) AS HOURS_SINCE_UPDATE
    FROM SNOWFLAKE.ACCOUNT_USAGE.TABLES
    WHERE DELETED IS NULL
        AND TABLE_TYPE = 'BASE TABLE'
)
SELECT
    *,
    CASE
        WHEN HOURS_SINCE_UPDATE > 168 THEN 'STALE (>1 week)'
        WHEN HOURS_SINCE_UPDATE > 48 THEN 'AGING (>2 days)'
        WHEN HOURS_SINCE_UPDATE > 24 THEN 'WARNING (>1 day)'
        ELSE 'FRESH'
    END AS FRESHNESS_STATUS
FROM table_last_modified
WHERE BYTES > 0
ORDER BY HOURS_SINCE_UPDATE DESC
LIMIT %[1]d`

const schemaChangesSQL = `
SELECT
    TABLE_CATALOG AS DATABASE_NAME,
    TABLE_SCHEMA AS SCHEMA_NAME,
    TABLE_NAME,
    COLUMN_NAME,
    DATA_TYPE,
    IS_NULLABLE,
    COLUMN_DEFAULT,
    COMMENT,
    DELETED
FROM SNOWFLAKE.ACCOUNT_USAGE.COLUMNS
WHERE LAST_ALTERED >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
ORDER BY LAST_ALTERED DESC
LIMIT %[2]d`

const quickStatsSQL = `
SELECT
    (SELECT COUNT(DISTINCT WAREHOUSE_NAME)
     FROM SNOWFLAKE.ACCOUNT_USAGE.WAREHOUSES
     WHERE DELETED IS NULL) AS ACTIVE_WAREHOUSES,
    (SELECT COUNT(DISTINCT DATABASE_NAME)
     FROM SNOWFLAKE.ACCOUNT_USAGE.DATABASES
     WHERE DELETED IS NULL) AS ACTIVE_DATABASES,
    (SELECT COUNT(DISTINCT USER_NAME)
     FROM SNOWFLAKE.ACCOUNT_USAGE.USERS
     WHERE DELETED_ON IS NULL) AS ACTIVE_USERS,
    (SELECT SUM(CREDITS_USED)
     FROM SNOWFLAKE.ACCOUNT_USAGE.METERING_HISTORY
     WHERE START_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())) AS TOTAL_CREDITS`

const dataTransferSQL = `
SELECT
    SOURCE_CLOUD,
    SOURCE_REGION,
    TARGET_CLOUD,
    TARGET_REGION,
    TRANSFER_TYPE,
    SUM(BYTES_TRANSFERRED) AS TOTAL_BYTES
FROM SNOWFLAKE.ACCOUNT_USAGE.DATA_TRANSFER_HISTORY
WHERE START_TIME >= DATEADD(DAY, -%[1]d, CURRENT_DATE())
GROUP BY SOURCE_CLOUD, SOURCE_REGION, TARGET_CLOUD, TARGET_REGION, TRANSFER_TYPE
ORDER BY TOTAL_BYTES DESC
LIMIT %[2]d`
